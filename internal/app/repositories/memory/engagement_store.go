package memory

import (
	"context"
	"time"

	"github.com/tranminh/mangareader/internal/app/models"
	"github.com/tranminh/mangareader/internal/pkg/apperrors"
)

// CommentStore implements repositories.ICommentRepository over the shared store
type CommentStore struct {
	store *Store
}

// Create inserts a new comment
func (r *CommentStore) Create(ctx context.Context, comment *models.Comment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	comment.ID = r.store.allocID()
	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	r.store.comments[comment.ID] = cloneComment(comment)
	return nil
}

// GetByID retrieves a comment by ID
func (r *CommentStore) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	comment, ok := r.store.comments[id]
	if !ok {
		return nil, apperrors.ErrCommentNotFound
	}
	return cloneComment(comment), nil
}

func (r *CommentStore) listWhere(match func(*models.Comment) bool, offset, limit int) []*models.Comment {
	matching := make(map[int64]*models.Comment)
	for id, c := range r.store.comments {
		if match(c) {
			matching[id] = c
		}
	}

	var comments []*models.Comment
	for _, id := range paginate(sortedIDs(matching), offset, limit) {
		comments = append(comments, cloneComment(matching[id]))
	}
	return comments
}

// ListByStory retrieves a story's comments in creation order
func (r *CommentStore) ListByStory(ctx context.Context, storyID int64, offset, limit int) ([]*models.Comment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.listWhere(func(c *models.Comment) bool {
		return c.StoryID != nil && *c.StoryID == storyID
	}, offset, limit), nil
}

// ListByGroup retrieves a group's comments in creation order
func (r *CommentStore) ListByGroup(ctx context.Context, groupID int64, offset, limit int) ([]*models.Comment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.listWhere(func(c *models.Comment) bool {
		return c.GroupID != nil && *c.GroupID == groupID
	}, offset, limit), nil
}

// ListByChapter retrieves a chapter's comments in creation order
func (r *CommentStore) ListByChapter(ctx context.Context, chapterID int64, offset, limit int) ([]*models.Comment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.listWhere(func(c *models.Comment) bool {
		return c.ChapterID != nil && *c.ChapterID == chapterID
	}, offset, limit), nil
}

// Delete removes a comment
func (r *CommentStore) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.comments[id]; !ok {
		return apperrors.ErrCommentNotFound
	}
	delete(r.store.comments, id)
	return nil
}

// FollowStore implements repositories.IFollowRepository over the shared store
type FollowStore struct {
	store *Store
}

// Create inserts a new follow, rejecting duplicate subscriptions
func (r *FollowStore) Create(ctx context.Context, follow *models.Follow) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, f := range r.store.follows {
		if f.AccountID != follow.AccountID {
			continue
		}
		if follow.StoryID != nil && f.StoryID != nil && *f.StoryID == *follow.StoryID {
			return apperrors.ErrAlreadyFollowing
		}
		if follow.GroupID != nil && f.GroupID != nil && *f.GroupID == *follow.GroupID {
			return apperrors.ErrAlreadyFollowing
		}
	}

	follow.ID = r.store.allocID()
	follow.CreatedAt = time.Now()
	r.store.follows[follow.ID] = cloneFollow(follow)
	return nil
}

// GetByID retrieves a follow by ID
func (r *FollowStore) GetByID(ctx context.Context, id int64) (*models.Follow, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	follow, ok := r.store.follows[id]
	if !ok {
		return nil, apperrors.ErrFollowNotFound
	}
	return cloneFollow(follow), nil
}

// ListByAccount retrieves an account's follows in creation order
func (r *FollowStore) ListByAccount(ctx context.Context, accountID int64, offset, limit int) ([]*models.Follow, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matching := make(map[int64]*models.Follow)
	for id, f := range r.store.follows {
		if f.AccountID == accountID {
			matching[id] = f
		}
	}

	var follows []*models.Follow
	for _, id := range paginate(sortedIDs(matching), offset, limit) {
		follows = append(follows, cloneFollow(matching[id]))
	}
	return follows, nil
}

// FollowerIDsByStory returns the account ids subscribed to a story
func (r *FollowStore) FollowerIDsByStory(ctx context.Context, storyID int64) ([]int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matching := make(map[int64]*models.Follow)
	for id, f := range r.store.follows {
		if f.StoryID != nil && *f.StoryID == storyID {
			matching[id] = f
		}
	}

	var ids []int64
	for _, id := range sortedIDs(matching) {
		ids = append(ids, matching[id].AccountID)
	}
	return ids, nil
}

// Delete removes a follow
func (r *FollowStore) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.follows[id]; !ok {
		return apperrors.ErrFollowNotFound
	}
	delete(r.store.follows, id)
	return nil
}

// NotificationStore implements repositories.INotificationRepository over the shared store
type NotificationStore struct {
	store *Store
}

// Create inserts a new notification
func (r *NotificationStore) Create(ctx context.Context, notification *models.Notification) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	notification.ID = r.store.allocID()
	notification.CreatedAt = time.Now()
	r.store.notifications[notification.ID] = cloneNotification(notification)
	return nil
}

// CreateBatch inserts a set of notifications
func (r *NotificationStore) CreateBatch(ctx context.Context, notifications []*models.Notification) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now()
	for _, n := range notifications {
		n.ID = r.store.allocID()
		n.CreatedAt = now
		r.store.notifications[n.ID] = cloneNotification(n)
	}
	return nil
}

// GetByID retrieves a notification by ID
func (r *NotificationStore) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	n, ok := r.store.notifications[id]
	if !ok {
		return nil, apperrors.ErrNotificationNotFound
	}
	return cloneNotification(n), nil
}

// ListByAccount retrieves an account's notifications, newest first
func (r *NotificationStore) ListByAccount(ctx context.Context, accountID int64, offset, limit int) ([]*models.Notification, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matching := make(map[int64]*models.Notification)
	for id, n := range r.store.notifications {
		if n.AccountID == accountID {
			matching[id] = n
		}
	}

	ids := sortedIDs(matching)
	// newest first
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}

	var notifications []*models.Notification
	for _, id := range paginate(ids, offset, limit) {
		notifications = append(notifications, cloneNotification(matching[id]))
	}
	return notifications, nil
}

// MarkRead marks a single notification as read
func (r *NotificationStore) MarkRead(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	n, ok := r.store.notifications[id]
	if !ok {
		return apperrors.ErrNotificationNotFound
	}
	n.IsRead = true
	return nil
}

// MarkAllRead marks every notification of an account as read
func (r *NotificationStore) MarkAllRead(ctx context.Context, accountID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, n := range r.store.notifications {
		if n.AccountID == accountID {
			n.IsRead = true
		}
	}
	return nil
}

// DonateStore implements repositories.IDonateRepository over the shared store
type DonateStore struct {
	store *Store
}

// Create inserts a new donation
func (r *DonateStore) Create(ctx context.Context, donate *models.Donate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	donate.ID = r.store.allocID()
	donate.CreatedAt = time.Now()
	r.store.donates[donate.ID] = cloneDonate(donate)
	return nil
}

func (r *DonateStore) listWhere(match func(*models.Donate) bool, offset, limit int) []*models.Donate {
	matching := make(map[int64]*models.Donate)
	for id, d := range r.store.donates {
		if match(d) {
			matching[id] = d
		}
	}

	var donates []*models.Donate
	for _, id := range paginate(sortedIDs(matching), offset, limit) {
		donates = append(donates, cloneDonate(matching[id]))
	}
	return donates
}

// ListByGroup retrieves a group's donations in creation order
func (r *DonateStore) ListByGroup(ctx context.Context, groupID int64, offset, limit int) ([]*models.Donate, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.listWhere(func(d *models.Donate) bool {
		return d.GroupID != nil && *d.GroupID == groupID
	}, offset, limit), nil
}

// ListByStory retrieves a story's donations in creation order
func (r *DonateStore) ListByStory(ctx context.Context, storyID int64, offset, limit int) ([]*models.Donate, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.listWhere(func(d *models.Donate) bool {
		return d.StoryID != nil && *d.StoryID == storyID
	}, offset, limit), nil
}
