package node

import (
	"sort"

	hclog "github.com/hashicorp/go-hclog"
	multierror "github.com/hashicorp/go-multierror"

	"github.com/wildosvpn/fleet/structs"
)

// reconciler drives node storage and back-ends toward the user state the
// panel pushes. All methods are serialized by the service so that updates
// apply in arrival order.
type reconciler struct {
	logger   hclog.Logger
	storage  *Storage
	backends *Backends
}

// diffTags splits old and new tag sets into additions and removals.
func diffTags(oldTags, newTags []string) (added, removed []string) {
	oldSet := make(map[string]struct{}, len(oldTags))
	for _, t := range oldTags {
		oldSet[t] = struct{}{}
	}
	newSet := make(map[string]struct{}, len(newTags))
	for _, t := range newTags {
		newSet[t] = struct{}{}
	}

	for t := range newSet {
		if _, ok := oldSet[t]; !ok {
			added = append(added, t)
		}
	}
	for t := range oldSet {
		if _, ok := newSet[t]; !ok {
			removed = append(removed, t)
		}
	}
	sort.Strings(added)
	sort.Strings(removed)
	return added, removed
}

// groupByBackend buckets tags by the backend currently serving them. Tags no
// backend serves are skipped; the panel may reference inbounds that moved.
func (r *reconciler) groupByBackend(tags []string) map[Backend][]string {
	byTag := r.backends.InboundTags()
	grouped := make(map[Backend][]string)
	for _, tag := range tags {
		backend, ok := byTag[tag]
		if !ok {
			r.logger.Warn("ignoring unknown inbound tag", "tag", tag)
			continue
		}
		grouped[backend] = append(grouped[backend], tag)
	}
	return grouped
}

// Apply drives storage and back-ends toward the update's target tag set. The
// operation is idempotent: applying the same update twice leaves storage and
// back-ends unchanged the second time.
func (r *reconciler) Apply(update structs.UserUpdate) error {
	stored, err := r.storage.GetUser(update.User.ID)
	if err != nil {
		return err
	}

	var oldTags []string
	if stored != nil {
		oldTags = stored.Inbounds
	}

	added, removed := diffTags(oldTags, update.Inbounds)

	var mErr multierror.Error
	for backend, tags := range r.groupByBackend(added) {
		if err := backend.AddUser(update.User, tags); err != nil {
			mErr.Errors = append(mErr.Errors, err)
		}
	}
	for backend, tags := range r.groupByBackend(removed) {
		if err := backend.RemoveUser(update.User, tags); err != nil {
			mErr.Errors = append(mErr.Errors, err)
		}
	}
	if err := mErr.ErrorOrNil(); err != nil {
		return err
	}

	if update.IsRemoval() {
		r.logger.Debug("removed user", "user_id", update.User.ID)
		return r.storage.DeleteUser(update.User.ID)
	}

	return r.storage.PutUser(&StoredUser{
		ID:       update.User.ID,
		Username: update.User.Username,
		Key:      update.User.Key,
		Inbounds: append([]string(nil), update.Inbounds...),
	})
}

// Repopulate performs a full reconcile against the authoritative list: every
// update is applied, and any local user absent from the list is removed.
func (r *reconciler) Repopulate(updates []structs.UserUpdate) error {
	present := make(map[int64]struct{}, len(updates))
	var mErr multierror.Error

	for _, update := range updates {
		present[update.User.ID] = struct{}{}
		if err := r.Apply(update); err != nil {
			mErr.Errors = append(mErr.Errors, err)
		}
	}

	local, err := r.storage.ListUsers()
	if err != nil {
		return err
	}
	for _, stored := range local {
		if _, ok := present[stored.ID]; ok {
			continue
		}
		removal := structs.UserUpdate{User: stored.AsUser()}
		if err := r.Apply(removal); err != nil {
			mErr.Errors = append(mErr.Errors, err)
		}
	}

	return mErr.ErrorOrNil()
}
