package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataroom/internal/model"
)

func TestCitationStore(t *testing.T) {
	store := NewCitationStore()
	ctx := context.Background()

	err := store.Replace(ctx, "q1", []model.SourceCitation{
		{DocumentID: "low", SimilarityScore: 0.2},
		{DocumentID: "high", SimilarityScore: 0.9},
	})
	require.NoError(t, err)

	got, err := store.ListByQuestion(ctx, "q1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "high", got[0].DocumentID)
	assert.Equal(t, "q1", got[0].QuestionID)

	require.NoError(t, store.Replace(ctx, "q1", nil))
	got, err = store.ListByQuestion(ctx, "q1")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}
