package models

import (
	"time"

	"github.com/chapternet/CN-PodcastService/internal/domain"
)

// Request модели

// SavePodcastRequest запрос на создание или обновление подкаста.
// Файл изображения передается отдельно от формы.
type SavePodcastRequest struct {
	PodcasterName  string    `json:"podcasterName"`
	AboutPodcaster string    `json:"aboutPodcaster"`
	Venue          string    `json:"venue"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	IsActive       bool      `json:"isActive"`
}

// ListPodcastsRequest запрос на получение списка подкастов
type ListPodcastsRequest struct {
	Search   *string `json:"search,omitempty"`
	Status   *string `json:"status,omitempty"`
	DateFrom *string `json:"dateFrom,omitempty"` // "2006-01-02"
	DateTo   *string `json:"dateTo,omitempty"`
	Page     int     `json:"page"`
	Limit    int     `json:"limit"`
}

// Response модели

// PodcastResponse ответ с данными подкаста
type PodcastResponse struct {
	ID             int64     `json:"id"`
	PodcasterName  string    `json:"podcasterName"`
	PodcasterImage string    `json:"podcasterImage"`
	AboutPodcaster string    `json:"aboutPodcaster"`
	Venue          string    `json:"venue"`
	StartDate      string    `json:"startDate"` // "2006-01-02"
	EndDate        string    `json:"endDate"`
	Status         string    `json:"status"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// PodcastListResponse ответ со списком подкастов и пагинацией
type PodcastListResponse struct {
	Podcasts   []PodcastResponse `json:"podcasts"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"totalPages"`
}

// FromDomainPodcast конвертирует доменную модель в response
func FromDomainPodcast(p *domain.Podcast) *PodcastResponse {
	return &PodcastResponse{
		ID:             p.ID,
		PodcasterName:  p.PodcasterName,
		PodcasterImage: p.PodcasterImage,
		AboutPodcaster: p.AboutPodcaster,
		Venue:          p.Venue,
		StartDate:      p.StartDate.Format(domain.DateFormat),
		EndDate:        p.EndDate.Format(domain.DateFormat),
		Status:         string(p.Status),
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// FromDomainPodcastList конвертирует список подкастов с пагинацией
func FromDomainPodcastList(podcasts []*domain.Podcast, total, page, limit int) *PodcastListResponse {
	resp := &PodcastListResponse{
		Podcasts:   make([]PodcastResponse, 0, len(podcasts)),
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: TotalPages(total, limit),
	}

	for _, p := range podcasts {
		resp.Podcasts = append(resp.Podcasts, *FromDomainPodcast(p))
	}

	return resp
}

// TotalPages считает число страниц: ceil(total/limit)
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// ToDomainPodcastStatus конвертирует строку в доменный статус подкаста
func ToDomainPodcastStatus(s string) (domain.PodcastStatus, bool) {
	for _, status := range domain.AllPodcastStatuses {
		if string(status) == s {
			return status, true
		}
	}
	return "", false
}
