// Package services holds the business rules of the platform: validation,
// authorization checks, cross-record workflows and notification fan-out.
// Controllers translate HTTP to these calls; repositories only move rows.
package services

import (
	"github.com/rs/zerolog"
	"github.com/tranminh/mangareader/internal/app/repositories"
	"github.com/tranminh/mangareader/internal/pkg/auth"
)

// Services bundles every service the API serves
type Services struct {
	Auth          *AuthService
	Accounts      *AccountService
	Groups        *GroupService
	Stories       *StoryService
	Comments      *CommentService
	Follows       *FollowService
	Notifications *NotificationService
	Donates       *DonateService
}

// NewServices wires every service over the given repositories
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, logger zerolog.Logger) *Services {
	authService := NewAuthService(repos.Accounts, jwtService, logger)

	return &Services{
		Auth:          authService,
		Accounts:      NewAccountService(repos.Accounts, authService, logger),
		Groups:        NewGroupService(repos.Groups, repos.Accounts, logger),
		Stories:       NewStoryService(repos.Stories, repos.Chapters, repos.Groups, repos.Follows, repos.Notifications, logger),
		Comments:      NewCommentService(repos.Comments, repos.Stories, repos.Groups, repos.Chapters, logger),
		Follows:       NewFollowService(repos.Follows, repos.Stories, repos.Groups, logger),
		Notifications: NewNotificationService(repos.Notifications, logger),
		Donates:       NewDonateService(repos.Donates, repos.Accounts, repos.Groups, repos.Stories, repos.Notifications, logger),
	}
}
