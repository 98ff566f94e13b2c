package create_booking

import (
	"time"

	"github.com/chapternet/CN-PodcastService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	SlotID int64   // ID слота
	UserID int64   // ID участника (MemberService)
	Notes  *string // Заметки администратора (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64
	SlotID    int64
	PodcastID int64
	UserID    int64
	Status    string

	// Денормализованные данные участника (пустые при degraded MemberService)
	MemberName    string
	MemberEmail   string
	MemberMobile  *string
	MemberChapter *string

	AdminNotes *string

	// Снимок слота на момент создания
	SlotDate      time.Time
	SlotStartTime types.TimeString
	SlotEndTime   types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}
