package memory

import (
	"context"
	"sort"
	"time"

	"github.com/tranminh/mangareader/internal/app/models"
	"github.com/tranminh/mangareader/internal/pkg/apperrors"
)

// AccountStore implements repositories.IAccountRepository over the shared store
type AccountStore struct {
	store *Store
}

func (r *AccountStore) usernameTaken(username string, exceptID int64) bool {
	for _, a := range r.store.accounts {
		if a.ID != exceptID && a.Username == username {
			return true
		}
	}
	return false
}

func (r *AccountStore) emailTaken(email *string, exceptID int64) bool {
	if email == nil {
		return false
	}
	for _, a := range r.store.accounts {
		if a.ID != exceptID && a.Email != nil && *a.Email == *email {
			return true
		}
	}
	return false
}

// Create inserts a new account, enforcing username and email uniqueness
func (r *AccountStore) Create(ctx context.Context, account *models.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.usernameTaken(account.Username, 0) {
		return apperrors.ErrUsernameAlreadyExists
	}
	if r.emailTaken(account.Email, 0) {
		return apperrors.ErrEmailAlreadyExists
	}

	account.ID = r.store.allocID()
	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now
	r.store.accounts[account.ID] = cloneAccount(account)
	return nil
}

// GetByID retrieves an account by ID
func (r *AccountStore) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	account, ok := r.store.accounts[id]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	return cloneAccount(account), nil
}

// GetByUsername retrieves an account by username
func (r *AccountStore) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, account := range r.store.accounts {
		if account.Username == username {
			return cloneAccount(account), nil
		}
	}
	return nil, apperrors.ErrAccountNotFound
}

func (r *AccountStore) List(ctx context.Context, offset, limit int) ([]*models.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	accounts := make([]*models.Account, 0)
	for _, id := range paginate(sortedIDs(r.store.accounts), offset, limit) {
		accounts = append(accounts, cloneAccount(r.store.accounts[id]))
	}
	return accounts, nil
}

// Update persists account fields, enforcing uniqueness
func (r *AccountStore) Update(ctx context.Context, account *models.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.accounts[account.ID]; !ok {
		return apperrors.ErrAccountNotFound
	}
	if r.usernameTaken(account.Username, account.ID) {
		return apperrors.ErrUsernameAlreadyExists
	}
	if r.emailTaken(account.Email, account.ID) {
		return apperrors.ErrEmailAlreadyExists
	}

	account.UpdatedAt = time.Now()
	r.store.accounts[account.ID] = cloneAccount(account)
	return nil
}

// Delete removes an account. Follows and notifications cascade with it;
// comments, donates and created stories keep their rows with the author
// reference nulled, matching the relational schema.
func (r *AccountStore) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.accounts[id]; !ok {
		return apperrors.ErrAccountNotFound
	}
	delete(r.store.accounts, id)

	for fid, f := range r.store.follows {
		if f.AccountID == id {
			delete(r.store.follows, fid)
		}
	}
	for nid, n := range r.store.notifications {
		if n.AccountID == id {
			delete(r.store.notifications, nid)
		}
	}
	for _, c := range r.store.comments {
		if c.AccountID != nil && *c.AccountID == id {
			c.AccountID = nil
		}
	}
	for _, d := range r.store.donates {
		if d.AccountID != nil && *d.AccountID == id {
			d.AccountID = nil
		}
	}
	for _, st := range r.store.stories {
		if st.CreatorID != nil && *st.CreatorID == id {
			st.CreatorID = nil
		}
	}

	return nil
}

// GetGroupLeader retrieves the account holding the leader role of a group
func (r *AccountStore) GetGroupLeader(ctx context.Context, groupID int64) (*models.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, a := range r.store.accounts {
		if a.IsLeaderOf(groupID) {
			return cloneAccount(a), nil
		}
	}
	return nil, apperrors.ErrAccountNotFound
}

// sortedIDs returns map keys in ascending order, the memory stand-in for
// insertion-order pagination.
func sortedIDs[T any](m map[int64]T) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
