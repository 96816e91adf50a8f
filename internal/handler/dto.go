package handler

import (
	"time"

	"github.com/msomdec/creator-studio/internal/domain"
)

// UserDTO is the public JSON projection of a user. The password hash and
// OTP fields never leave the server.
type UserDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:    u.ID,
		Name:  u.DisplayName,
		Email: u.Email,
	}
}

// AuthResponseDTO is the body returned by login and complete-signup.
type AuthResponseDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

func toAuthResponseDTO(u *domain.User, token string) AuthResponseDTO {
	return AuthResponseDTO{
		ID:    u.ID,
		Name:  u.DisplayName,
		Email: u.Email,
		Token: token,
	}
}

// ContentDataDTO is the JSON representation of a content payload.
type ContentDataDTO struct {
	Prompt   string `json:"prompt"`
	Response string `json:"response"`
}

// ContentItemDTO is the JSON representation of a content item.
type ContentItemDTO struct {
	ID        int64          `json:"id"`
	UserID    int64          `json:"userId"`
	Type      string         `json:"type"`
	Data      ContentDataDTO `json:"data"`
	CreatedAt string         `json:"createdAt"`
}

func toContentItemDTO(item *domain.ContentItem) ContentItemDTO {
	return ContentItemDTO{
		ID:     item.ID,
		UserID: item.UserID,
		Type:   string(item.Type),
		Data: ContentDataDTO{
			Prompt:   item.Data.Prompt,
			Response: item.Data.Response,
		},
		CreatedAt: item.CreatedAt.Format(time.RFC3339),
	}
}

func toContentItemDTOs(items []domain.ContentItem) []ContentItemDTO {
	dtos := make([]ContentItemDTO, len(items))
	for i := range items {
		dtos[i] = toContentItemDTO(&items[i])
	}
	return dtos
}
