// Package memory provides an in-memory record store implementing the
// repository interfaces. It mirrors the relational schema's constraint and
// cascade behavior closely enough for service-level tests to run without a
// database.
package memory

import (
	"sync"

	"github.com/tranminh/mangareader/internal/app/models"
)

// Store holds every entity table behind one mutex. Repository views over it
// implement the interfaces in the repositories package.
type Store struct {
	mu sync.RWMutex

	accounts      map[int64]*models.Account
	groups        map[int64]*models.Group
	stories       map[int64]*models.Story
	chapters      map[int64]*models.Chapter
	comments      map[int64]*models.Comment
	follows       map[int64]*models.Follow
	notifications map[int64]*models.Notification
	donates       map[int64]*models.Donate
	storyGroups   map[[2]int64]*models.StoryGroup

	nextID int64
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		accounts:      make(map[int64]*models.Account),
		groups:        make(map[int64]*models.Group),
		stories:       make(map[int64]*models.Story),
		chapters:      make(map[int64]*models.Chapter),
		comments:      make(map[int64]*models.Comment),
		follows:       make(map[int64]*models.Follow),
		notifications: make(map[int64]*models.Notification),
		donates:       make(map[int64]*models.Donate),
		storyGroups:   make(map[[2]int64]*models.StoryGroup),
		nextID:        1,
	}
}

func (s *Store) allocID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// Accounts returns the account repository view
func (s *Store) Accounts() *AccountStore { return &AccountStore{s} }

// Groups returns the group repository view
func (s *Store) Groups() *GroupStore { return &GroupStore{s} }

// Stories returns the story repository view
func (s *Store) Stories() *StoryStore { return &StoryStore{s} }

// Chapters returns the chapter repository view
func (s *Store) Chapters() *ChapterStore { return &ChapterStore{s} }

// Comments returns the comment repository view
func (s *Store) Comments() *CommentStore { return &CommentStore{s} }

// Follows returns the follow repository view
func (s *Store) Follows() *FollowStore { return &FollowStore{s} }

// Notifications returns the notification repository view
func (s *Store) Notifications() *NotificationStore { return &NotificationStore{s} }

// Donates returns the donate repository view
func (s *Store) Donates() *DonateStore { return &DonateStore{s} }

func cloneAccount(a *models.Account) *models.Account {
	c := *a
	if a.Email != nil {
		v := *a.Email
		c.Email = &v
	}
	if a.PasswordHash != nil {
		v := *a.PasswordHash
		c.PasswordHash = &v
	}
	if a.GroupID != nil {
		v := *a.GroupID
		c.GroupID = &v
	}
	if a.GroupRole != nil {
		v := *a.GroupRole
		c.GroupRole = &v
	}
	return &c
}

func cloneGroup(g *models.Group) *models.Group {
	c := *g
	return &c
}

func cloneStory(st *models.Story) *models.Story {
	c := *st
	c.Tags = append([]string(nil), st.Tags...)
	return &c
}

func cloneChapter(ch *models.Chapter) *models.Chapter {
	c := *ch
	return &c
}

func cloneComment(cm *models.Comment) *models.Comment {
	c := *cm
	return &c
}

func cloneFollow(f *models.Follow) *models.Follow {
	c := *f
	return &c
}

func cloneNotification(n *models.Notification) *models.Notification {
	c := *n
	return &c
}

func cloneDonate(d *models.Donate) *models.Donate {
	c := *d
	return &c
}
