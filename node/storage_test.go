package node

import (
	"path/filepath"
	"testing"

	"github.com/shoenig/test/must"
)

func testStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := OpenStorage(filepath.Join(t.TempDir(), "users.db"))
	must.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStorage_CRUD(t *testing.T) {
	s := testStorage(t)

	missing, err := s.GetUser(1)
	must.NoError(t, err)
	must.Nil(t, missing)

	must.NoError(t, s.PutUser(&StoredUser{
		ID: 1, Username: "alice", Key: "k1",
		Inbounds: []string{"b-in", "a-in"},
	}))

	got, err := s.GetUser(1)
	must.NoError(t, err)
	must.NotNil(t, got)
	must.Eq(t, "alice", got.Username)
	// Tags come back sorted regardless of write order.
	must.Eq(t, []string{"a-in", "b-in"}, got.Inbounds)

	must.NoError(t, s.DeleteUser(1))
	gone, err := s.GetUser(1)
	must.NoError(t, err)
	must.Nil(t, gone)

	// Deleting again is a no-op.
	must.NoError(t, s.DeleteUser(1))
}

func TestStorage_ListUsers(t *testing.T) {
	s := testStorage(t)

	for id := int64(3); id >= 1; id-- {
		must.NoError(t, s.PutUser(&StoredUser{ID: id, Username: "u", Key: "k"}))
	}

	users, err := s.ListUsers()
	must.NoError(t, err)
	must.Len(t, 3, users)
	// Big-endian keys keep iteration ordered by id.
	must.Eq(t, int64(1), users[0].ID)
	must.Eq(t, int64(3), users[2].ID)
}

func TestStorage_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.db")

	s, err := OpenStorage(path)
	must.NoError(t, err)
	must.NoError(t, s.PutUser(&StoredUser{ID: 7, Username: "dave", Key: "k7", Inbounds: []string{"in"}}))
	must.NoError(t, s.Close())

	s2, err := OpenStorage(path)
	must.NoError(t, err)
	defer s2.Close()

	got, err := s2.GetUser(7)
	must.NoError(t, err)
	must.NotNil(t, got)
	must.Eq(t, "dave", got.Username)
}
