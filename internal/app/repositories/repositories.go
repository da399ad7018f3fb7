// Package repositories is the record-store gateway: every read and write
// against the relational schema goes through here, and unique-constraint
// violations come back as Conflict sentinels rather than raw driver errors.
package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles every repository over one connection pool
type Repositories struct {
	Accounts      *AccountRepository
	Groups        *GroupRepository
	Stories       *StoryRepository
	Chapters      *ChapterRepository
	Comments      *CommentRepository
	Follows       *FollowRepository
	Notifications *NotificationRepository
	Donates       *DonateRepository
}

// NewRepositories creates every repository over the given pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Accounts:      NewAccountRepository(db),
		Groups:        NewGroupRepository(db),
		Stories:       NewStoryRepository(db),
		Chapters:      NewChapterRepository(db),
		Comments:      NewCommentRepository(db),
		Follows:       NewFollowRepository(db),
		Notifications: NewNotificationRepository(db),
		Donates:       NewDonateRepository(db),
	}
}
