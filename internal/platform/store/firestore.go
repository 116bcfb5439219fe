// Package store constructs the document store client both tiers share.
package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// New creates a Firestore client for the given project. An optional
// credentials file overrides ambient credentials.
func New(ctx context.Context, projectID, credsFile string) (*firestore.Client, error) {
	var opts []option.ClientOption
	if credsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credsFile))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("platform/store: new client: %w", err)
	}
	return client, nil
}
