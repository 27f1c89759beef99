package models

// SettingsID — единственный допустимый идентификатор записи настроек.
const SettingsID = "site"

// Settings — единственная запись настроек сайта: брендинг, тема,
// видимость секций и контакты. Создается при первом старте сервера,
// если отсутствует.
type Settings struct {
	ID                 string `json:"-"`
	SiteName           string `json:"site_name"`
	LogoURL            string `json:"logo_url"`
	FaviconURL         string `json:"favicon_url"`
	HeroHeadline       string `json:"hero_headline"`
	HeroSubheadline    string `json:"hero_subheadline"`
	HeroVideoURL       string `json:"hero_video_url"`
	DiscordInviteURL   string `json:"discord_invite_url"`
	Theme              string `json:"theme"`
	InstagramURL       string `json:"instagram_url"`
	YoutubeURL         string `json:"youtube_url"`
	TiktokURL          string `json:"tiktok_url"`
	FacebookURL        string `json:"facebook_url"`
	ContactEmail       string `json:"contact_email"`
	ContactPhone       string `json:"contact_phone"`
	FooterText         string `json:"footer_text"`
	ShowResultsSection bool   `json:"show_results_section"`
	ShowFAQSection     bool   `json:"show_faq_section"`
	Currency           string `json:"currency"`
}

// DefaultSettings возвращает запись настроек со значениями по умолчанию.
func DefaultSettings() *Settings {
	return &Settings{
		ID:                 SettingsID,
		SiteName:           "Continental Academy",
		HeroHeadline:       "Pokreni svoj Online Biznis",
		HeroSubheadline:    "Nauči kako da zarađuješ na društvenim mrežama od profesionalaca koji su to već uradili.",
		Theme:              "dark-luxury",
		ShowResultsSection: true,
		ShowFAQSection:     true,
		Currency:           "EUR",
	}
}
