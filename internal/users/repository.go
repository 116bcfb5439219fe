package users

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/yaleims/api/internal/shared"
)

const usersCollection = "users"

// Repository defines persistence operations for the role store. All
// mutations are single-document writes relying on the store's per-document
// atomicity; there are no cross-document transactions here.
type Repository interface {
	Get(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) error
	SetRole(ctx context.Context, email, role string) error
	AddTeamCaptainOf(ctx context.Context, email, sport string) error
	ClearTeamsCaptainOf(ctx context.Context, email string) error
}

// FirestoreRepository implements Repository against Cloud Firestore.
type FirestoreRepository struct {
	client *firestore.Client
}

// NewRepository constructs a Firestore-backed repository.
func NewRepository(client *firestore.Client) *FirestoreRepository {
	return &FirestoreRepository{client: client}
}

func (r *FirestoreRepository) doc(email string) *firestore.DocumentRef {
	return r.client.Collection(usersCollection).Doc(email)
}

// Get fetches a user document by email.
func (r *FirestoreRepository) Get(ctx context.Context, email string) (*User, error) {
	snap, err := r.doc(email).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	var user User
	if err := snap.DataTo(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Create writes a new user document. Failing on an existing document keeps
// first-login provisioning a once-per-identity side effect.
func (r *FirestoreRepository) Create(ctx context.Context, user *User) error {
	_, err := r.doc(user.Email).Create(ctx, user)
	return err
}

// SetRole overwrites the primary role field.
func (r *FirestoreRepository) SetRole(ctx context.Context, email, role string) error {
	_, err := r.doc(email).Update(ctx, []firestore.Update{
		{Path: "role", Value: role},
	})
	return mapNotFound(err)
}

// AddTeamCaptainOf unions a sport into teamsCaptainOf. The array-union
// sentinel makes repeated calls idempotent.
func (r *FirestoreRepository) AddTeamCaptainOf(ctx context.Context, email, sport string) error {
	_, err := r.doc(email).Update(ctx, []firestore.Update{
		{Path: "teamsCaptainOf", Value: firestore.ArrayUnion(sport)},
	})
	return mapNotFound(err)
}

// ClearTeamsCaptainOf deletes the teamsCaptainOf field entirely.
func (r *FirestoreRepository) ClearTeamsCaptainOf(ctx context.Context, email string) error {
	_, err := r.doc(email).Update(ctx, []firestore.Update{
		{Path: "teamsCaptainOf", Value: firestore.Delete},
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
