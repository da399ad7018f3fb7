package memory

import (
	"context"
	"sort"
	"time"

	"github.com/tranminh/mangareader/internal/app/models"
	"github.com/tranminh/mangareader/internal/pkg/apperrors"
)

// StoryStore implements repositories.IStoryRepository over the shared store
type StoryStore struct {
	store *Store
}

// Create inserts a new story
func (r *StoryStore) Create(ctx context.Context, story *models.Story) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	story.ID = r.store.allocID()
	now := time.Now()
	story.CreatedAt = now
	story.UpdatedAt = now
	r.store.stories[story.ID] = cloneStory(story)
	return nil
}

// GetByID retrieves a story by ID
func (r *StoryStore) GetByID(ctx context.Context, id int64) (*models.Story, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	story, ok := r.store.stories[id]
	if !ok {
		return nil, apperrors.ErrStoryNotFound
	}
	return cloneStory(story), nil
}

// List retrieves stories in creation order
func (r *StoryStore) List(ctx context.Context, offset, limit int) ([]*models.Story, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var stories []*models.Story
	for _, id := range paginate(sortedIDs(r.store.stories), offset, limit) {
		stories = append(stories, cloneStory(r.store.stories[id]))
	}
	return stories, nil
}

// Update persists story fields
func (r *StoryStore) Update(ctx context.Context, story *models.Story) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.stories[story.ID]
	if !ok {
		return apperrors.ErrStoryNotFound
	}

	existing.Title = story.Title
	existing.Description = story.Description
	existing.Tags = append([]string(nil), story.Tags...)
	existing.Author = story.Author
	existing.Approval = story.Approval
	existing.UpdatedAt = time.Now()
	return nil
}

// Delete removes a story and everything it owns
func (r *StoryStore) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.stories[id]; !ok {
		return apperrors.ErrStoryNotFound
	}
	delete(r.store.stories, id)

	for cid, ch := range r.store.chapters {
		if ch.StoryID == id {
			delete(r.store.chapters, cid)
			for cmid, cm := range r.store.comments {
				if cm.ChapterID != nil && *cm.ChapterID == cid {
					delete(r.store.comments, cmid)
				}
			}
		}
	}
	for cid, c := range r.store.comments {
		if c.StoryID != nil && *c.StoryID == id {
			delete(r.store.comments, cid)
		}
	}
	for fid, f := range r.store.follows {
		if f.StoryID != nil && *f.StoryID == id {
			delete(r.store.follows, fid)
		}
	}
	for did, d := range r.store.donates {
		if d.StoryID != nil && *d.StoryID == id {
			delete(r.store.donates, did)
		}
	}
	for key := range r.store.storyGroups {
		if key[0] == id {
			delete(r.store.storyGroups, key)
		}
	}

	return nil
}

// AssignGroup records a translation-ownership association
func (r *StoryStore) AssignGroup(ctx context.Context, storyID, groupID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := [2]int64{storyID, groupID}
	if _, ok := r.store.storyGroups[key]; ok {
		return apperrors.ErrConflict
	}
	r.store.storyGroups[key] = &models.StoryGroup{
		StoryID:  storyID,
		GroupID:  groupID,
		JoinedAt: time.Now(),
	}
	return nil
}

// UnassignGroup removes a translation-ownership association
func (r *StoryStore) UnassignGroup(ctx context.Context, storyID, groupID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := [2]int64{storyID, groupID}
	if _, ok := r.store.storyGroups[key]; !ok {
		return apperrors.ErrResourceNotFound
	}
	delete(r.store.storyGroups, key)
	return nil
}

// GroupAssigned checks whether a group holds translation ownership of a story
func (r *StoryStore) GroupAssigned(ctx context.Context, storyID, groupID int64) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	_, ok := r.store.storyGroups[[2]int64{storyID, groupID}]
	return ok, nil
}

// ChapterStore implements repositories.IChapterRepository over the shared store
type ChapterStore struct {
	store *Store
}

// Create inserts a new chapter
func (r *ChapterStore) Create(ctx context.Context, chapter *models.Chapter) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	chapter.ID = r.store.allocID()
	now := time.Now()
	chapter.CreatedAt = now
	chapter.UpdatedAt = now
	r.store.chapters[chapter.ID] = cloneChapter(chapter)
	return nil
}

// GetByID retrieves a chapter by ID
func (r *ChapterStore) GetByID(ctx context.Context, id int64) (*models.Chapter, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	chapter, ok := r.store.chapters[id]
	if !ok {
		return nil, apperrors.ErrChapterNotFound
	}
	return cloneChapter(chapter), nil
}

// ListByStory retrieves a story's chapters ordered by chapter number
func (r *ChapterStore) ListByStory(ctx context.Context, storyID int64, offset, limit int) ([]*models.Chapter, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var all []*models.Chapter
	for _, ch := range r.store.chapters {
		if ch.StoryID == storyID {
			all = append(all, ch)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Number != all[j].Number {
			return all[i].Number < all[j].Number
		}
		return all[i].ID < all[j].ID
	})

	var chapters []*models.Chapter
	for _, ch := range paginate(all, offset, limit) {
		chapters = append(chapters, cloneChapter(ch))
	}
	return chapters, nil
}

// Update persists chapter fields
func (r *ChapterStore) Update(ctx context.Context, chapter *models.Chapter) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.chapters[chapter.ID]
	if !ok {
		return apperrors.ErrChapterNotFound
	}

	existing.Number = chapter.Number
	existing.Title = chapter.Title
	existing.Content = chapter.Content
	existing.Approval = chapter.Approval
	existing.UpdatedAt = time.Now()
	return nil
}

// Delete removes a chapter and its comments
func (r *ChapterStore) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.chapters[id]; !ok {
		return apperrors.ErrChapterNotFound
	}
	delete(r.store.chapters, id)
	for cid, c := range r.store.comments {
		if c.ChapterID != nil && *c.ChapterID == id {
			delete(r.store.comments, cid)
		}
	}
	return nil
}
