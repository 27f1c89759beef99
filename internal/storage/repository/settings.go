package repository

import (
	"context"
	"fmt"

	"github.com/continental-academy/academy-api/internal/models"
)

// GetSettings возвращает единственную запись настроек сайта.
func (s *Storage) GetSettings(ctx context.Context) (*models.Settings, error) {
	const op = "storage.GetSettings"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, site_name, logo_url, favicon_url, hero_headline,
			      hero_subheadline, hero_video_url, discord_invite_url, theme,
			      instagram_url, youtube_url, tiktok_url, facebook_url,
			      contact_email, contact_phone, footer_text,
			      show_results_section, show_faq_section, currency
			  FROM site_settings
			  WHERE id = $1`
	st := &models.Settings{}
	row := s.DB.QueryRowContext(ctx, query, models.SettingsID)
	if err := row.Scan(&st.ID, &st.SiteName, &st.LogoURL, &st.FaviconURL, &st.HeroHeadline,
		&st.HeroSubheadline, &st.HeroVideoURL, &st.DiscordInviteURL, &st.Theme,
		&st.InstagramURL, &st.YoutubeURL, &st.TiktokURL, &st.FacebookURL,
		&st.ContactEmail, &st.ContactPhone, &st.FooterText,
		&st.ShowResultsSection, &st.ShowFAQSection, &st.Currency); err != nil {
		return nil, mapRowError(op, err)
	}
	return st, nil
}

// UpsertSettings сохраняет настройки сайта, создавая запись при отсутствии.
func (s *Storage) UpsertSettings(ctx context.Context, st *models.Settings) error {
	const op = "storage.UpsertSettings"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO site_settings (id, site_name, logo_url, favicon_url,
			      hero_headline, hero_subheadline, hero_video_url, discord_invite_url,
			      theme, instagram_url, youtube_url, tiktok_url, facebook_url,
			      contact_email, contact_phone, footer_text,
			      show_results_section, show_faq_section, currency)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			      $11, $12, $13, $14, $15, $16, $17, $18, $19)
			  ON CONFLICT (id) DO UPDATE SET
			      site_name = EXCLUDED.site_name,
			      logo_url = EXCLUDED.logo_url,
			      favicon_url = EXCLUDED.favicon_url,
			      hero_headline = EXCLUDED.hero_headline,
			      hero_subheadline = EXCLUDED.hero_subheadline,
			      hero_video_url = EXCLUDED.hero_video_url,
			      discord_invite_url = EXCLUDED.discord_invite_url,
			      theme = EXCLUDED.theme,
			      instagram_url = EXCLUDED.instagram_url,
			      youtube_url = EXCLUDED.youtube_url,
			      tiktok_url = EXCLUDED.tiktok_url,
			      facebook_url = EXCLUDED.facebook_url,
			      contact_email = EXCLUDED.contact_email,
			      contact_phone = EXCLUDED.contact_phone,
			      footer_text = EXCLUDED.footer_text,
			      show_results_section = EXCLUDED.show_results_section,
			      show_faq_section = EXCLUDED.show_faq_section,
			      currency = EXCLUDED.currency`
	if _, err := s.DB.ExecContext(ctx, query,
		models.SettingsID, st.SiteName, st.LogoURL, st.FaviconURL,
		st.HeroHeadline, st.HeroSubheadline, st.HeroVideoURL, st.DiscordInviteURL,
		st.Theme, st.InstagramURL, st.YoutubeURL, st.TiktokURL, st.FacebookURL,
		st.ContactEmail, st.ContactPhone, st.FooterText,
		st.ShowResultsSection, st.ShowFAQSection, st.Currency); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
