package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPossible(t *testing.T) {
	tests := []struct {
		word string
		root string
		want bool
	}{
		{"ball", "balloon", true},
		{"loon", "balloon", true},
		{"balloon", "balloon", true},
		{"bbll", "balloon", false},
		{"balll", "balloon", false},
		{"xyz", "balloon", false},
		{"listen", "silent", true},
		{"tinsel", "silent", true},
		{"lists", "silent", false},
		{"", "silent", true},
		{"a", "", false},
		{"café", "écaf", true},
		{"cafe\u0301", "cafés", true},
		{"café", "cafe\u0301s", true},
		{"face", "cafe\u0301", false},
		{"cafe", "café", false},
	}

	for _, tt := range tests {
		t.Run(tt.word+"/"+tt.root, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPossible(tt.word, tt.root))
		})
	}
}

func TestOutcomeErr(t *testing.T) {
	assert.NoError(t, Outcome{Status: StatusAccepted, Word: "ball"}.Err())
	assert.NoError(t, Outcome{Status: StatusIgnored}.Err())

	reasons := map[Reason]error{
		ReasonAlreadyUsed:  ErrAlreadyUsed,
		ReasonNotPossible:  ErrNotPossible,
		ReasonNotReal:      ErrNotReal,
		ReasonSameAsRoot:   ErrSameAsRoot,
		ReasonSessionEnded: ErrSessionEnded,
	}
	for reason, sentinel := range reasons {
		out := Outcome{Status: StatusRejected, Word: "w", Rejection: newRejection(reason, "root")}
		err := out.Err()
		assert.ErrorIs(t, err, sentinel, reason)

		var rejErr *RejectionError
		if assert.True(t, errors.As(err, &rejErr)) {
			assert.Equal(t, reason, rejErr.Rejection.Reason)
			assert.Contains(t, rejErr.Error(), out.Rejection.Title)
		}
	}
}

func TestNotPossibleMessageNamesRoot(t *testing.T) {
	r := newRejection(ReasonNotPossible, "balloon")
	assert.Contains(t, r.Message, "balloon")
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "accepted", StatusAccepted.String())
	assert.Equal(t, "rejected", StatusRejected.String())
	assert.Equal(t, "ignored", StatusIgnored.String())
	assert.Equal(t, "active", StateActive.String())
	assert.Equal(t, "ended", StateEnded.String())
	assert.Equal(t, "not_real", ReasonNotReal.String())
}
