package router_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hrassistant/internal/domain"
	"hrassistant/internal/router"
)

func TestClassifyLeaveApplication(t *testing.T) {
	r := router.New()

	cls, err := r.Classify("apply for leave 2.5")
	require.NoError(t, err)
	require.Equal(t, domain.KindLeaveApplication, cls.Kind)
	require.Equal(t, 2.5, cls.Days)

	// case and surrounding whitespace are normalized away
	cls, err = r.Classify("  Apply For Leave 3  ")
	require.NoError(t, err)
	require.Equal(t, domain.KindLeaveApplication, cls.Kind)
	require.Equal(t, 3.0, cls.Days)
}

func TestClassifyLeaveApplicationMissingDays(t *testing.T) {
	r := router.New()

	_, err := r.Classify("apply for leave")
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrValidation)
	require.Equal(t, router.MissingDaysMessage, err.Error())

	_, err = r.Classify("apply for leave tomorrow")
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrParse)
	require.Equal(t, router.MissingDaysMessage, err.Error())
}

func TestClassifyBalance(t *testing.T) {
	r := router.New()

	for _, q := range []string{
		"what is my leave balance?",
		"how many remaining leaves do I have",
		"How many leaves are left?",
	} {
		cls, err := r.Classify(q)
		require.NoError(t, err, q)
		require.Equal(t, domain.KindBalance, cls.Kind, q)
	}
}

func TestClassifyApplicationWinsOverBalancePhrasing(t *testing.T) {
	r := router.New()

	cls, err := r.Classify("apply for leave 3 since I have so many remaining leaves")
	require.NoError(t, err)
	require.Equal(t, domain.KindLeaveApplication, cls.Kind)
	require.Equal(t, 3.0, cls.Days)
}

func TestClassifyPolicyQuestionFallback(t *testing.T) {
	r := router.New()

	cls, err := r.Classify("  What Is The Maternity Policy?  ")
	require.NoError(t, err)
	require.Equal(t, domain.KindPolicyQuestion, cls.Kind)
	require.Equal(t, "what is the maternity policy?", cls.Question)
}
