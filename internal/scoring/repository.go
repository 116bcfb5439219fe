// Package scoring holds the privileged match-score and bet endpoints on the
// functions tier. It records outcomes against match documents; leaderboard
// computation lives elsewhere.
package scoring

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/yaleims/api/internal/shared"
)

const matchesCollection = "matches"

// Bettor is one wager appended to a match document.
type Bettor struct {
	NetID string `firestore:"netid" json:"netid"`
	Pick  string `firestore:"pick" json:"pick"`
}

// Repository defines the match-document writes this package performs.
type Repository interface {
	RecordScore(ctx context.Context, matchID string, home, away int, scoredBy string) error
	AddBettor(ctx context.Context, matchID string, bettor Bettor) error
}

// FirestoreRepository implements Repository against Cloud Firestore.
type FirestoreRepository struct {
	client *firestore.Client
}

// NewRepository constructs a Firestore-backed repository.
func NewRepository(client *firestore.Client) *FirestoreRepository {
	return &FirestoreRepository{client: client}
}

// RecordScore merges the final score into the match document.
func (r *FirestoreRepository) RecordScore(ctx context.Context, matchID string, home, away int, scoredBy string) error {
	_, err := r.client.Collection(matchesCollection).Doc(matchID).Set(ctx, map[string]any{
		"homeScore": home,
		"awayScore": away,
		"scoredBy":  scoredBy,
		"scoredAt":  firestore.ServerTimestamp,
	}, firestore.MergeAll)
	return mapNotFound(err)
}

// AddBettor unions the bettor into the match's bet list. Repeating the same
// wager leaves the list unchanged.
func (r *FirestoreRepository) AddBettor(ctx context.Context, matchID string, bettor Bettor) error {
	_, err := r.client.Collection(matchesCollection).Doc(matchID).Update(ctx, []firestore.Update{
		{Path: "bets", Value: firestore.ArrayUnion(bettor)},
	})
	return mapNotFound(err)
}

func mapNotFound(err error) error {
	if err != nil && status.Code(err) == codes.NotFound {
		return shared.ErrNotFound
	}
	return err
}

var _ Repository = (*FirestoreRepository)(nil)
