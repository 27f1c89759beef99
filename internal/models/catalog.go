package models

import "time"

// Program представляет продаваемую программу-подписку,
// объединяющую несколько курсов.
type Program struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	Currency      string    `json:"currency"`
	ThumbnailURL  string    `json:"thumbnail_url"`
	Features      []string  `json:"features"`
	IsActive      bool      `json:"is_active"`
	StripePriceID string    `json:"stripe_price_id,omitempty"` // Внешняя ссылка на цену платежного провайдера
	CreatedAt     time.Time `json:"created_at"`
}

// Course представляет курс. ProgramID может быть пустым: такой курс
// доступен только через прямое назначение пользователю.
type Course struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ProgramID     string    `json:"program_id,omitempty"`
	ThumbnailURL  string    `json:"thumbnail_url"`
	DurationHours float64   `json:"duration_hours"`
	Order         int       `json:"order"`
	IsActive      bool      `json:"is_active"`
	LessonCount   int       `json:"lesson_count"`           // Вычисляется при выдаче списков
	ProgramName   string    `json:"program_name,omitempty"` // Заполняется только в админском списке
	Lessons       []*Lesson `json:"lessons,omitempty"`      // Заполняется при просмотре курса
	CreatedAt     time.Time `json:"created_at"`
}

// Lesson представляет урок курса. Урок с IsFree = true доступен
// любому аутентифицированному пользователю как промо-превью.
type Lesson struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	CourseID        string    `json:"course_id"`
	VideoURL        string    `json:"video_url"`
	MuxPlaybackID   string    `json:"mux_playback_id"`
	DurationMinutes int       `json:"duration_minutes"`
	Order           int       `json:"order"`
	IsFree          bool      `json:"is_free"`
	CreatedAt       time.Time `json:"created_at"`
}

// FAQ — вопрос и ответ для публичной страницы.
type FAQ struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

// Result — изображение с подписью для секции результатов учеников.
type Result struct {
	ID        string    `json:"id"`
	ImageURL  string    `json:"image_url"`
	Caption   string    `json:"caption"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

// ProgramRequest — входные данные создания и обновления программы.
type ProgramRequest struct {
	Name          string   `json:"name" validate:"required"`
	Description   string   `json:"description"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	Currency      string   `json:"currency"`
	ThumbnailURL  string   `json:"thumbnail_url"`
	Features      []string `json:"features"`
	IsActive      *bool    `json:"is_active"`
	StripePriceID string   `json:"stripe_price_id"`
}

// CourseRequest — входные данные создания и обновления курса.
type CourseRequest struct {
	Title         string  `json:"title" validate:"required"`
	Description   string  `json:"description"`
	ProgramID     string  `json:"program_id"`
	ThumbnailURL  string  `json:"thumbnail_url"`
	DurationHours float64 `json:"duration_hours"`
	Order         int     `json:"order"`
	IsActive      *bool   `json:"is_active"`
}

// LessonRequest — входные данные создания и обновления урока.
type LessonRequest struct {
	Title           string `json:"title" validate:"required"`
	Description     string `json:"description"`
	CourseID        string `json:"course_id" validate:"required"`
	VideoURL        string `json:"video_url"`
	MuxPlaybackID   string `json:"mux_playback_id"`
	DurationMinutes int    `json:"duration_minutes"`
	Order           int    `json:"order"`
	IsFree          bool   `json:"is_free"`
}

// FAQRequest — входные данные создания и обновления FAQ.
type FAQRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
	Order    int    `json:"order"`
}

// ResultRequest — входные данные создания результата.
type ResultRequest struct {
	ImageURL string `json:"image_url" validate:"required"`
	Caption  string `json:"caption"`
	Order    int    `json:"order"`
}

// LessonOrder — элемент запроса на переупорядочивание уроков.
type LessonOrder struct {
	ID    string `json:"id" validate:"required"`
	Order int    `json:"order"`
}
