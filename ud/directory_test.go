////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package ud

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/safesync/client/interfaces"
)

func usernames(users []interfaces.User) []string {
	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Username)
	}
	return names
}

func TestDirectory_Search(t *testing.T) {
	d := NewDirectory()
	d.Replace([]string{"alice", "bob", "carol"})

	results := d.Search("a", "bob")
	require.Equal(t, []string{"alice", "carol"}, usernames(results))
	for _, u := range results {
		require.Empty(t, u.ID)
		require.Nil(t, u.PublicKey)
	}
}

func TestDirectory_Search_CaseInsensitive(t *testing.T) {
	d := NewDirectory()
	d.Replace([]string{"Alice", "MALLORY", "bob"})

	require.Equal(t, []string{"Alice", "MALLORY"},
		usernames(d.Search("AL", "bob")))
	require.Equal(t, []string{"Alice", "MALLORY"},
		usernames(d.Search("l", "")))
}

// The caller never sees their own name, whatever the query
func TestDirectory_Search_NeverSelf(t *testing.T) {
	d := NewDirectory()
	all := []string{"alice", "bob", "carol", "bobby"}
	d.Replace(all)

	for _, self := range all {
		for _, q := range []string{"", "b", "o", self} {
			require.NotContains(t, usernames(d.Search(q, self)), self)
		}
	}
	// Exact match only: bobby stays when bob searches
	require.Equal(t, []string{"bobby"}, usernames(d.Search("bob", "bob")))
}

func TestDirectory_Search_Exclude(t *testing.T) {
	d := NewDirectory()
	d.Replace([]string{"alice", "bob", "carol", "dave"})

	require.Equal(t, []string{"dave"},
		usernames(d.Search("", "bob", "alice", "carol")))
}

func TestDirectory_Search_Empty(t *testing.T) {
	d := NewDirectory()
	require.Empty(t, d.Search("", "bob"))
	require.Zero(t, d.Len())
}

// Replace copies its input and Usernames copies its output
func TestDirectory_Copies(t *testing.T) {
	d := NewDirectory()
	in := []string{"alice", "bob"}
	d.Replace(in)
	in[0] = "mallory"

	out := d.Usernames()
	require.Equal(t, []string{"alice", "bob"}, out)
	out[1] = "eve"
	require.Equal(t, []string{"alice", "bob"}, d.Usernames())
	require.Equal(t, 2, d.Len())
}
