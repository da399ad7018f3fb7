package memory

import (
	"context"
	"time"

	"github.com/tranminh/mangareader/internal/app/models"
	"github.com/tranminh/mangareader/internal/pkg/apperrors"
)

// GroupStore implements repositories.IGroupRepository over the shared store
type GroupStore struct {
	store *Store
}

// CreateWithLeader inserts the group and promotes the leader account under
// one lock; neither outlives a failure of the other.
func (r *GroupStore) CreateWithLeader(ctx context.Context, group *models.Group, leaderID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, g := range r.store.groups {
		if g.Name == group.Name {
			return apperrors.ErrGroupAlreadyExists
		}
	}

	leader, ok := r.store.accounts[leaderID]
	if !ok {
		return apperrors.ErrAccountNotFound
	}

	group.ID = r.store.allocID()
	now := time.Now()
	group.CreatedAt = now
	group.UpdatedAt = now
	r.store.groups[group.ID] = cloneGroup(group)

	gid := group.ID
	role := models.GroupRoleLeader
	leader.GroupID = &gid
	leader.GroupRole = &role
	leader.UpdatedAt = now

	return nil
}

// GetByID retrieves a group by ID
func (r *GroupStore) GetByID(ctx context.Context, id int64) (*models.Group, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	group, ok := r.store.groups[id]
	if !ok {
		return nil, apperrors.ErrGroupNotFound
	}
	return cloneGroup(group), nil
}

// List retrieves groups in creation order with offset/limit pagination
func (r *GroupStore) List(ctx context.Context, offset, limit int) ([]*models.Group, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var groups []*models.Group
	for _, id := range paginate(sortedIDs(r.store.groups), offset, limit) {
		groups = append(groups, cloneGroup(r.store.groups[id]))
	}
	return groups, nil
}

// Update persists group description and avatar
func (r *GroupStore) Update(ctx context.Context, group *models.Group) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.groups[group.ID]
	if !ok {
		return apperrors.ErrGroupNotFound
	}

	existing.Description = group.Description
	existing.Avatar = group.Avatar
	existing.UpdatedAt = time.Now()
	return nil
}

// Delete removes a group, cascading to chapters, donates, follows, comments
// and story associations; members are detached, not deleted.
func (r *GroupStore) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.groups[id]; !ok {
		return apperrors.ErrGroupNotFound
	}
	delete(r.store.groups, id)

	now := time.Now()
	for _, a := range r.store.accounts {
		if a.GroupID != nil && *a.GroupID == id {
			a.GroupID = nil
			a.GroupRole = nil
			a.UpdatedAt = now
		}
	}
	for cid, ch := range r.store.chapters {
		if ch.GroupID == id {
			r.deleteChapterLocked(cid)
		}
	}
	for did, d := range r.store.donates {
		if d.GroupID != nil && *d.GroupID == id {
			delete(r.store.donates, did)
		}
	}
	for fid, f := range r.store.follows {
		if f.GroupID != nil && *f.GroupID == id {
			delete(r.store.follows, fid)
		}
	}
	for cid, c := range r.store.comments {
		if c.GroupID != nil && *c.GroupID == id {
			delete(r.store.comments, cid)
		}
	}
	for key := range r.store.storyGroups {
		if key[1] == id {
			delete(r.store.storyGroups, key)
		}
	}

	return nil
}

func (r *GroupStore) deleteChapterLocked(chapterID int64) {
	delete(r.store.chapters, chapterID)
	for cid, c := range r.store.comments {
		if c.ChapterID != nil && *c.ChapterID == chapterID {
			delete(r.store.comments, cid)
		}
	}
}
