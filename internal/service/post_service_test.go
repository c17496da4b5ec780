package service

import (
	"Skylark/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type postFixture struct {
	users       *memUserRepo
	posts       *memPostRepo
	hashtags    *memHashtagRepo
	settings    *memSettingRepo
	friendships *memFriendshipRepo
	engagements *memEngagementRepo
	timelines   *memTimelineRepo
	timelineSvc TimelineService
	svc         PostService
}

func newPostFixture() *postFixture {
	f := &postFixture{
		users:       newMemUserRepo(),
		posts:       newMemPostRepo(),
		hashtags:    newMemHashtagRepo(),
		settings:    newMemSettingRepo(),
		friendships: newMemFriendshipRepo(),
		engagements: newMemEngagementRepo(),
		timelines:   newMemTimelineRepo(),
	}
	f.timelineSvc = NewTimelineService(f.timelines, f.friendships, f.posts)
	f.svc = NewPostService(f.posts, f.users, f.hashtags, f.settings, f.friendships, f.engagements, f.timelineSvc)
	return f
}

func (f *postFixture) addUser(t *testing.T, screenName string) *model.User {
	t.Helper()
	user := &model.User{ScreenName: screenName}
	require.NoError(t, f.users.CreateUser(context.Background(), user))
	require.NoError(t, f.friendships.EnsureRecord(context.Background(), user.ID))
	require.NoError(t, f.timelines.EnsureTimeline(context.Background(), user.ID))
	return user
}

func (f *postFixture) follow(t *testing.T, followerID, targetID uint64) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.friendships.AddFriend(ctx, followerID, targetID))
	require.NoError(t, f.friendships.AddFollower(ctx, targetID, followerID))
}

func TestCreatePostAssignsPublicIDAndFansOut(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()
	bob := f.addUser(t, "bob")
	alice := f.addUser(t, "alice")
	f.follow(t, alice.ID, bob.ID)

	post, err := f.svc.CreatePost(ctx, bob.ID, "hello #golang world")
	require.NoError(t, err)
	require.NotNil(t, post.PublicID)
	assert.Equal(t, uint64(1), *post.PublicID)

	bobRow, err := f.users.GetUserById(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), bobRow.StatusesCount)

	// 作者和粉丝的时间线都拿到了引用
	for _, ownerID := range []uint64{bob.ID, alice.ID} {
		entries, err := f.timelines.GetEntries(ctx, ownerID, 100, 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, post.ID, entries[0].PostID)
	}

	tags, err := f.hashtags.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "golang", tags[0].Name)
	assert.Equal(t, int64(1), tags[0].Volume)
}

func TestCreatePostEmptyText(t *testing.T) {
	f := newPostFixture()
	alice := f.addUser(t, "alice")

	_, err := f.svc.CreatePost(context.Background(), alice.ID, "")
	assert.ErrorIs(t, err, ErrPostTextEmpty)
}

func TestRepostCreatesLinkedPost(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()
	bob := f.addUser(t, "bob")
	alice := f.addUser(t, "alice")

	original, err := f.svc.CreatePost(ctx, bob.ID, "hello world")
	require.NoError(t, err)

	result, repost, err := f.svc.RepostPost(ctx, alice.ID, original.ID)
	require.NoError(t, err)
	assert.True(t, result.Modified)
	require.NotNil(t, repost)
	assert.Equal(t, "RT @bob: hello world", repost.Text)
	require.NotNil(t, repost.RepostOfID)
	assert.Equal(t, original.ID, *repost.RepostOfID)

	reposted, err := f.friendships.HasReposted(ctx, alice.ID, original.ID)
	require.NoError(t, err)
	assert.True(t, reposted)

	reposters, err := f.engagements.GetReposters(ctx, original.ID, 100, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint64{alice.ID}, reposters)
}

func TestRepostIsIdempotent(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()
	bob := f.addUser(t, "bob")
	alice := f.addUser(t, "alice")

	original, err := f.svc.CreatePost(ctx, bob.ID, "hello")
	require.NoError(t, err)

	_, _, err = f.svc.RepostPost(ctx, alice.ID, original.ID)
	require.NoError(t, err)

	result, repost, err := f.svc.RepostPost(ctx, alice.ID, original.ID)
	require.NoError(t, err)
	assert.False(t, result.Modified)
	assert.Nil(t, repost)

	aliceRow, err := f.users.GetUserById(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), aliceRow.StatusesCount)
}

func TestUnrepostRemovesRepost(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()
	bob := f.addUser(t, "bob")
	alice := f.addUser(t, "alice")

	original, err := f.svc.CreatePost(ctx, bob.ID, "hello")
	require.NoError(t, err)

	_, repost, err := f.svc.RepostPost(ctx, alice.ID, original.ID)
	require.NoError(t, err)

	result, err := f.svc.UnrepostPost(ctx, alice.ID, original.ID)
	require.NoError(t, err)
	assert.True(t, result.Modified)

	gone, err := f.posts.GetPostById(ctx, repost.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	reposted, err := f.friendships.HasReposted(ctx, alice.ID, original.ID)
	require.NoError(t, err)
	assert.False(t, reposted)

	reposters, err := f.engagements.GetReposters(ctx, original.ID, 100, 0)
	require.NoError(t, err)
	assert.Empty(t, reposters)

	// 未转发时撤销是空操作
	result, err = f.svc.UnrepostPost(ctx, alice.ID, original.ID)
	require.NoError(t, err)
	assert.False(t, result.Modified)
}

func TestReplyLinksParent(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()
	bob := f.addUser(t, "bob")
	alice := f.addUser(t, "alice")

	parent, err := f.svc.CreatePost(ctx, bob.ID, "hello")
	require.NoError(t, err)

	reply, err := f.svc.ReplyToPost(ctx, alice.ID, parent.ID, "hi bob")
	require.NoError(t, err)
	require.NotNil(t, reply.InReplyToPostID)
	assert.Equal(t, parent.ID, *reply.InReplyToPostID)
	require.NotNil(t, reply.InReplyToUserID)
	assert.Equal(t, bob.ID, *reply.InReplyToUserID)
	require.NotNil(t, reply.InReplyToScreenName)
	assert.Equal(t, "bob", *reply.InReplyToScreenName)

	replies, err := f.engagements.GetReplies(ctx, parent.ID, 100, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint64{reply.ID}, replies)
}

func TestDeletePostRequiresOwnership(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()
	bob := f.addUser(t, "bob")
	alice := f.addUser(t, "alice")

	post, err := f.svc.CreatePost(ctx, bob.ID, "hello")
	require.NoError(t, err)

	err = f.svc.DeletePost(ctx, alice.ID, post.ID)
	assert.ErrorIs(t, err, UnauthorizedError)
}

func TestDeletePostWithdrawsFromTimelines(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()
	bob := f.addUser(t, "bob")
	alice := f.addUser(t, "alice")
	f.follow(t, alice.ID, bob.ID)

	post, err := f.svc.CreatePost(ctx, bob.ID, "hello")
	require.NoError(t, err)

	require.NoError(t, f.svc.DeletePost(ctx, bob.ID, post.ID))

	for _, ownerID := range []uint64{bob.ID, alice.ID} {
		entries, err := f.timelines.GetEntries(ctx, ownerID, 100, 0)
		require.NoError(t, err)
		assert.Empty(t, entries)
	}

	bobRow, err := f.users.GetUserById(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), bobRow.StatusesCount)
}
