package gnormsvc

import (
	"context"
	"testing"

	"github.com/dekarrin/gnorm/grammar"
	"github.com/dekarrin/gnorm/internal/store/inmem"
	"github.com/dekarrin/gnorm/server/serr"
	"github.com/stretchr/testify/assert"
)

func Test_Service_Normalize(t *testing.T) {
	ctx := context.Background()

	t.Run("second call is cached", func(t *testing.T) {
		assert := assert.New(t)
		svc := Service{DB: inmem.NewDatastore()}

		first, cached, err := svc.Normalize(ctx, "start -> E\nE -> E + ID | ID", grammar.Options{})
		if !assert.NoError(err) {
			return
		}
		assert.False(cached)
		assert.NotNil(first.Grammar.Rule("E_p0"))

		second, cached, err := svc.Normalize(ctx, "start -> E\n\nE -> E + ID | ID\n", grammar.Options{})
		assert.NoError(err)
		assert.True(cached)
		assert.Equal(first.ID, second.ID)

		third, cached, err := svc.Normalize(ctx, "start -> E\nE -> E + ID | ID", grammar.Options{EliminateBacktracking: true})
		assert.NoError(err)
		assert.False(cached)
		assert.NotEqual(first.ID, third.ID)
		assert.True(third.Backtracking)
	})

	t.Run("bad grammar", func(t *testing.T) {
		assert := assert.New(t)
		svc := Service{DB: inmem.NewDatastore()}

		_, _, err := svc.Normalize(ctx, "expr -> fn", grammar.Options{})
		assert.ErrorIs(err, serr.ErrGrammar)
		assert.ErrorIs(err, grammar.ErrSyntax)

		all, err := svc.GetAllResults(ctx)
		assert.NoError(err)
		assert.Empty(all)
	})
}

func Test_Service_Analyze(t *testing.T) {
	assert := assert.New(t)
	svc := Service{DB: inmem.NewDatastore()}

	a, err := svc.Analyze(context.Background(), "start -> ( , | ( ;")
	if !assert.NoError(err) {
		return
	}
	assert.Len(a.Conflicts, 1)

	_, err = svc.Analyze(context.Background(), "start -> ( ε )")
	assert.ErrorIs(err, serr.ErrGrammar)
}

func Test_Service_GetAndDelete(t *testing.T) {
	ctx := context.Background()
	assert := assert.New(t)
	svc := Service{DB: inmem.NewDatastore()}

	r, _, err := svc.Normalize(ctx, "start -> fn", grammar.Options{})
	if !assert.NoError(err) {
		return
	}

	got, err := svc.GetResult(ctx, r.ID.String())
	assert.NoError(err)
	assert.Equal(r.ID, got.ID)

	_, err = svc.GetResult(ctx, "not-a-uuid")
	assert.ErrorIs(err, serr.ErrBadArgument)

	deleted, err := svc.DeleteResult(ctx, r.ID.String())
	assert.NoError(err)
	assert.Equal(r.ID, deleted.ID)

	_, err = svc.GetResult(ctx, r.ID.String())
	assert.ErrorIs(err, serr.ErrNotFound)
	_, err = svc.DeleteResult(ctx, r.ID.String())
	assert.ErrorIs(err, serr.ErrNotFound)
}
