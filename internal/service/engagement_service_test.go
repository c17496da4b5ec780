package service

import (
	"Skylark/internal/model"
	"Skylark/internal/pkg/consts"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type engagementFixture struct {
	users       *memUserRepo
	posts       *memPostRepo
	friendships *memFriendshipRepo
	engagements *memEngagementRepo
	svc         EngagementService
}

func newEngagementFixture() *engagementFixture {
	f := &engagementFixture{
		users:       newMemUserRepo(),
		posts:       newMemPostRepo(),
		friendships: newMemFriendshipRepo(),
		engagements: newMemEngagementRepo(),
	}
	f.svc = NewEngagementService(f.users, f.posts, f.friendships, f.engagements)
	return f
}

func (f *engagementFixture) addUser(t *testing.T, screenName string) *model.User {
	t.Helper()
	user := &model.User{ScreenName: screenName}
	require.NoError(t, f.users.CreateUser(context.Background(), user))
	return user
}

func (f *engagementFixture) addPost(t *testing.T, authorID uint64, text string) *model.Post {
	t.Helper()
	post := &model.Post{UserID: authorID, Text: text}
	require.NoError(t, f.posts.CreatePost(context.Background(), post))
	return post
}

func TestLikeRecordsBothSides(t *testing.T) {
	f := newEngagementFixture()
	ctx := context.Background()
	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")
	post := f.addPost(t, bob.ID, "hello")

	result, err := f.svc.Like(ctx, alice.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, result.Modified)

	liked, err := f.friendships.HasLiked(ctx, alice.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	likers, err := f.engagements.GetLikers(ctx, post.ID, 100, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint64{alice.ID}, likers)

	aliceRow, err := f.users.GetUserById(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), aliceRow.FavouritesCount)
}

func TestLikeIsIdempotent(t *testing.T) {
	f := newEngagementFixture()
	ctx := context.Background()
	alice := f.addUser(t, "alice")
	post := f.addPost(t, alice.ID, "hello")

	_, err := f.svc.Like(ctx, alice.ID, post.ID)
	require.NoError(t, err)

	result, err := f.svc.Like(ctx, alice.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.False(t, result.Modified)

	count, err := f.engagements.CountLikers(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	aliceRow, err := f.users.GetUserById(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), aliceRow.FavouritesCount)
}

func TestUnlikeRoundTrip(t *testing.T) {
	f := newEngagementFixture()
	ctx := context.Background()
	alice := f.addUser(t, "alice")
	post := f.addPost(t, alice.ID, "hello")

	_, err := f.svc.Like(ctx, alice.ID, post.ID)
	require.NoError(t, err)

	result, err := f.svc.Unlike(ctx, alice.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, result.Modified)

	liked, err := f.friendships.HasLiked(ctx, alice.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	count, err := f.engagements.CountLikers(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	aliceRow, err := f.users.GetUserById(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), aliceRow.FavouritesCount)

	// 再次取消是空操作
	result, err = f.svc.Unlike(ctx, alice.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, result.Modified)
}

func TestLikeMissingPost(t *testing.T) {
	f := newEngagementFixture()
	alice := f.addUser(t, "alice")

	_, err := f.svc.Like(context.Background(), alice.ID, 999)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestLikersPaginationNewestFirst(t *testing.T) {
	f := newEngagementFixture()
	ctx := context.Background()
	author := f.addUser(t, "author")
	post := f.addPost(t, author.ID, "hello")

	likers := make([]*model.User, 0, 40)
	for i := 0; i < 40; i++ {
		u := f.addUser(t, fmt.Sprintf("liker%02d", i))
		likers = append(likers, u)
		_, err := f.svc.Like(ctx, u.ID, post.ID)
		require.NoError(t, err)
	}

	page1, err := f.svc.GetLikers(ctx, post.ID, 1)
	require.NoError(t, err)
	require.Len(t, page1, consts.EngagementPageSize)
	assert.Equal(t, likers[39].ID, page1[0].ID)

	page2, err := f.svc.GetLikers(ctx, post.ID, 2)
	require.NoError(t, err)
	require.Len(t, page2, consts.EngagementPageSize)
	assert.Equal(t, likers[24].ID, page2[0].ID)

	page3, err := f.svc.GetLikers(ctx, post.ID, 3)
	require.NoError(t, err)
	require.Len(t, page3, 10)

	page4, err := f.svc.GetLikers(ctx, post.ID, 4)
	require.NoError(t, err)
	assert.Empty(t, page4)
}

func TestGetLikeCountWithoutCache(t *testing.T) {
	f := newEngagementFixture()
	ctx := context.Background()
	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")
	post := f.addPost(t, alice.ID, "hello")

	_, err := f.svc.Like(ctx, alice.ID, post.ID)
	require.NoError(t, err)
	_, err = f.svc.Like(ctx, bob.ID, post.ID)
	require.NoError(t, err)

	count, err := f.svc.GetLikeCount(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
