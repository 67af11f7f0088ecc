//go:build integration

package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/deppfellow/students-api/internal/dberr"
	"github.com/deppfellow/students-api/internal/model"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// startMongo runs a throwaway MongoDB container and returns a connected client.
func startMongo(t *testing.T) *mongo.Client {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "could not connect to docker")

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "7",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "could not start mongo")
	t.Cleanup(func() { _ = pool.Purge(resource) })

	uri := fmt.Sprintf("mongodb://localhost:%s", resource.GetPort("27017/tcp"))

	var client *mongo.Client
	pool.MaxWait = 60 * time.Second
	err = pool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		c, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			return err
		}
		if err := c.Ping(ctx, readpref.Primary()); err != nil {
			_ = c.Disconnect(ctx)
			return err
		}
		client = c
		return nil
	})
	require.NoError(t, err, "mongo not ready")

	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	return client
}

func TestMongoStudentRepository_Integration(t *testing.T) {
	client := startMongo(t)
	repo := NewMongoStudentRepository(client.Database("students_test").Collection("students"))
	ctx := context.Background()

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	created, err := repo.Create(ctx, ada)
	require.NoError(t, err)

	fetched, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)

	byEmail, err := repo.FindByEmail(ctx, ada.Email)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	replacement := model.StudentFields{Name: "Ada L.", Email: "ada@y.io", Cohort: "2025"}
	updated, err := repo.ReplaceByID(ctx, created.ID, replacement)
	require.NoError(t, err)
	assert.Equal(t, replacement, updated.Fields())

	deleted, err := repo.DeleteByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, deleted)

	_, err = repo.FindByID(ctx, created.ID)
	assert.True(t, dberr.Is(err, dberr.NotFound))

	_, err = repo.ReplaceByID(ctx, created.ID, replacement)
	assert.True(t, dberr.Is(err, dberr.NotFound))
}
