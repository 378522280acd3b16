package lifecycle_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recruithub/hiring-pipeline/internal/lifecycle"
)

func talentProfile(active bool) lifecycle.TalentProfile {
	return lifecycle.TalentProfile{
		ID:             uuid.New(),
		DisplayID:      "TP000001",
		Name:           "Sam Rivera",
		Email:          "sam@example.com",
		ExperienceTags: []string{"kubernetes"},
		IsActive:       active,
		CreatedAt:      now,
	}
}

func TestTalentToggle(t *testing.T) {
	p := talentProfile(true)

	res, err := lifecycle.TalentTransition(p, lifecycle.EventDeactivate, now)
	require.NoError(t, err)
	assert.False(t, res.Profile.IsActive)
	require.Len(t, res.Events, 1)
	assert.Equal(t, lifecycle.TemplateTalentDeactivated, res.Events[0].Payload["template"])

	res, err = lifecycle.TalentTransition(res.Profile, lifecycle.EventActivate, now)
	require.NoError(t, err)
	assert.True(t, res.Profile.IsActive)
}

func TestTalentToggle_AlreadyInState(t *testing.T) {
	p := talentProfile(true)

	_, err := lifecycle.TalentTransition(p, lifecycle.EventActivate, now)
	var terr *lifecycle.TransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, lifecycle.KindInvalidTransition, terr.Kind)
}

func TestTalentToggle_UnknownEvent(t *testing.T) {
	p := talentProfile(true)

	_, err := lifecycle.TalentTransition(p, lifecycle.EventEvaluate, now)
	var terr *lifecycle.TransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, lifecycle.KindInvalidTransition, terr.Kind)
}

func TestTalentAvailableEvents(t *testing.T) {
	assert.Equal(t, []lifecycle.Event{lifecycle.EventDeactivate}, lifecycle.TalentAvailableEvents(talentProfile(true)))
	assert.Equal(t, []lifecycle.Event{lifecycle.EventActivate}, lifecycle.TalentAvailableEvents(talentProfile(false)))
}
