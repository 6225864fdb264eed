package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kb-cms/models"
)

func TestCreateTag(t *testing.T) {
	f := newFixture(t)

	tag, err := f.tags.CreateTag(models.CreateTagRequest{Name: "networking"}, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "networking", tag.Name)

	_, err = f.tags.CreateTag(models.CreateTagRequest{Name: "networking"}, models.RoleAdmin)
	assert.True(t, models.IsConflict(err))

	_, err = f.tags.CreateTag(models.CreateTagRequest{Name: "storage"}, models.RoleModerator)
	assert.True(t, models.IsPermission(err))
}

func TestGetTag(t *testing.T) {
	f := newFixture(t)
	created, err := f.tags.CreateTag(models.CreateTagRequest{Name: "networking"}, models.RoleAdmin)
	require.NoError(t, err)

	tag, err := f.tags.GetTag(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "networking", tag.Name)

	_, err = f.tags.GetTag(9000)
	assert.True(t, models.IsNotFound(err))
}

func TestTagUsageCountsFollowPublishedArticles(t *testing.T) {
	f := newFixture(t)

	first := f.createArticle(t, "Install Guide", true, "golang", "setup")
	f.createArticle(t, "Upgrade Guide", true, "golang")

	golang, err := f.tagRepo.GetByName("golang")
	require.NoError(t, err)
	assert.Equal(t, 2, golang.UsageCount)

	setup, err := f.tagRepo.GetByName("setup")
	require.NoError(t, err)
	assert.Equal(t, 1, setup.UsageCount)

	// Deleting an article releases its share of the counts.
	require.NoError(t, f.articles.DeleteArticle(first.ID, models.RoleAdmin))

	golang, err = f.tagRepo.GetByName("golang")
	require.NoError(t, err)
	assert.Equal(t, 1, golang.UsageCount)

	setup, err = f.tagRepo.GetByName("setup")
	require.NoError(t, err)
	assert.Equal(t, 0, setup.UsageCount)

	// Tag ordering surfaces the busiest tags first.
	tags, err := f.tags.GetTags()
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "golang", tags[0].Name)
}
