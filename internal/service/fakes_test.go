package service

import (
	"Skylark/internal/model"
	"Skylark/internal/pkg/mongo"
	"context"
	"sort"
	"sync"
	"time"
)

// 进程内的存储替身，保持与线上实现一致的语义：
// 头部插入、成员去重、$slice 式分页、原子自增

type memUserRepo struct {
	mu     sync.Mutex
	nextID uint64
	users  map[uint64]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[uint64]*model.User{}}
}

func (s *memUserRepo) CreateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *memUserRepo) GetUserById(_ context.Context, id uint64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok || u.IsDeleted {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (s *memUserRepo) GetUserByIds(_ context.Context, ids []uint64) ([]*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok && !u.IsDeleted {
			clone := *u
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *memUserRepo) GetUserByScreenName(_ context.Context, screenName string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ScreenName == screenName && !u.IsDeleted {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *memUserRepo) SetPublicID(_ context.Context, id uint64, publicID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok && u.PublicID == nil {
		u.PublicID = &publicID
	}
	return nil
}

func (s *memUserRepo) incr(id uint64, apply func(*model.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		apply(u)
	}
	return nil
}

func (s *memUserRepo) IncrFollowersCount(_ context.Context, id uint64, delta int64) error {
	return s.incr(id, func(u *model.User) { u.FollowersCount += delta })
}

func (s *memUserRepo) IncrFriendsCount(_ context.Context, id uint64, delta int64) error {
	return s.incr(id, func(u *model.User) { u.FriendsCount += delta })
}

func (s *memUserRepo) IncrStatusesCount(_ context.Context, id uint64, delta int64) error {
	return s.incr(id, func(u *model.User) { u.StatusesCount += delta })
}

func (s *memUserRepo) IncrFavouritesCount(_ context.Context, id uint64, delta int64) error {
	return s.incr(id, func(u *model.User) { u.FavouritesCount += delta })
}

func (s *memUserRepo) UpdateUser(_ context.Context, user *model.User) error {
	return s.incr(user.ID, func(u *model.User) {
		u.Name = user.Name
		u.Location = user.Location
		u.Bio = user.Bio
	})
}

type memPostRepo struct {
	mu     sync.Mutex
	nextID uint64
	posts  map[uint64]*model.Post
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{posts: map[uint64]*model.Post{}}
}

func (s *memPostRepo) CreatePost(_ context.Context, post *model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	post.ID = s.nextID
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	clone := *post
	s.posts[post.ID] = &clone
	return nil
}

func (s *memPostRepo) GetPostById(_ context.Context, id uint64) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok || p.IsDeleted {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (s *memPostRepo) GetPostByIds(_ context.Context, ids []uint64) ([]*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.posts[id]; ok && !p.IsDeleted {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *memPostRepo) GetPostByPublicID(_ context.Context, publicID uint64) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.PublicID != nil && *p.PublicID == publicID && !p.IsDeleted {
			clone := *p
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *memPostRepo) GetPostsByAuthor(_ context.Context, userID uint64, limit, offset int) ([]*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	authored := make([]*model.Post, 0)
	for _, p := range s.posts {
		if p.UserID == userID && !p.IsDeleted {
			clone := *p
			authored = append(authored, &clone)
		}
	}
	sort.Slice(authored, func(i, j int) bool {
		return authored[i].CreatedAt.After(authored[j].CreatedAt)
	})
	if offset >= len(authored) {
		return []*model.Post{}, nil
	}
	end := offset + limit
	if end > len(authored) {
		end = len(authored)
	}
	return authored[offset:end], nil
}

func (s *memPostRepo) FindRepostOf(_ context.Context, userID uint64, repostOfID uint64) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.UserID == userID && p.RepostOfID != nil && *p.RepostOfID == repostOfID && !p.IsDeleted {
			clone := *p
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *memPostRepo) SetPublicID(_ context.Context, id uint64, publicID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.posts[id]; ok && p.PublicID == nil {
		p.PublicID = &publicID
	}
	return nil
}

func (s *memPostRepo) SoftDeletePost(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.posts[id]; ok {
		p.IsDeleted = true
	}
	return nil
}

type memHashtagRepo struct {
	mu     sync.Mutex
	nextID uint64
	tags   map[string]*model.Hashtag
}

func newMemHashtagRepo() *memHashtagRepo {
	return &memHashtagRepo{tags: map[string]*model.Hashtag{}}
}

func (s *memHashtagRepo) IncrementVolume(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tag, ok := s.tags[name]; ok {
		tag.Volume++
		tag.UpdatedAt = time.Now()
		return nil
	}
	s.nextID++
	now := time.Now()
	s.tags[name] = &model.Hashtag{ID: s.nextID, Name: name, Volume: 1, CreatedAt: now, UpdatedAt: now}
	return nil
}

func (s *memHashtagRepo) GetAll(_ context.Context) ([]*model.Hashtag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Hashtag, 0, len(s.tags))
	for _, tag := range s.tags {
		clone := *tag
		out = append(out, &clone)
	}
	return out, nil
}

func (s *memHashtagRepo) UpdateScore(_ context.Context, id uint64, score float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tag := range s.tags {
		if tag.ID == id {
			tag.Score = score
		}
	}
	return nil
}

func (s *memHashtagRepo) GetTop(_ context.Context, limit int) ([]*model.Hashtag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Hashtag, 0, len(s.tags))
	for _, tag := range s.tags {
		if tag.Volume > 0 {
			clone := *tag
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Volume > out[j].Volume
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type friendshipRecord struct {
	followerIDs   []uint64
	friendIDs     []uint64
	likedPostIDs  []uint64
	repostPostIDs []uint64
}

type memFriendshipRepo struct {
	mu      sync.Mutex
	records map[uint64]*friendshipRecord
}

func newMemFriendshipRepo() *memFriendshipRepo {
	return &memFriendshipRepo{records: map[uint64]*friendshipRecord{}}
}

func (s *memFriendshipRepo) record(userID uint64) *friendshipRecord {
	rec, ok := s.records[userID]
	if !ok {
		rec = &friendshipRecord{}
		s.records[userID] = rec
	}
	return rec
}

func contains(list []uint64, member uint64) bool {
	for _, v := range list {
		if v == member {
			return true
		}
	}
	return false
}

func pushFront(list []uint64, member uint64) []uint64 {
	if contains(list, member) {
		return list
	}
	return append([]uint64{member}, list...)
}

func pull(list []uint64, member uint64) []uint64 {
	out := list[:0]
	for _, v := range list {
		if v != member {
			out = append(out, v)
		}
	}
	return out
}

func slicePage(list []uint64, limit, offset int) []uint64 {
	if offset >= len(list) {
		return []uint64{}
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	page := make([]uint64, end-offset)
	copy(page, list[offset:end])
	return page
}

func (s *memFriendshipRepo) EnsureRecord(_ context.Context, userID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(userID)
	return nil
}

func (s *memFriendshipRepo) IsFollowing(_ context.Context, userID, friendID uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return contains(s.record(userID).friendIDs, friendID), nil
}

func (s *memFriendshipRepo) IsFollowedBy(_ context.Context, userID, followerID uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return contains(s.record(userID).followerIDs, followerID), nil
}

func (s *memFriendshipRepo) HasLiked(_ context.Context, userID, postID uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return contains(s.record(userID).likedPostIDs, postID), nil
}

func (s *memFriendshipRepo) HasReposted(_ context.Context, userID, postID uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return contains(s.record(userID).repostPostIDs, postID), nil
}

func (s *memFriendshipRepo) AddFriend(_ context.Context, userID, friendID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.record(userID)
	rec.friendIDs = pushFront(rec.friendIDs, friendID)
	return nil
}

func (s *memFriendshipRepo) RemoveFriend(_ context.Context, userID, friendID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.record(userID)
	rec.friendIDs = pull(rec.friendIDs, friendID)
	return nil
}

func (s *memFriendshipRepo) AddFollower(_ context.Context, userID, followerID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.record(userID)
	rec.followerIDs = pushFront(rec.followerIDs, followerID)
	return nil
}

func (s *memFriendshipRepo) RemoveFollower(_ context.Context, userID, followerID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.record(userID)
	rec.followerIDs = pull(rec.followerIDs, followerID)
	return nil
}

func (s *memFriendshipRepo) AddLiked(_ context.Context, userID, postID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.record(userID)
	rec.likedPostIDs = pushFront(rec.likedPostIDs, postID)
	return nil
}

func (s *memFriendshipRepo) RemoveLiked(_ context.Context, userID, postID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.record(userID)
	rec.likedPostIDs = pull(rec.likedPostIDs, postID)
	return nil
}

func (s *memFriendshipRepo) AddReposted(_ context.Context, userID, postID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.record(userID)
	rec.repostPostIDs = pushFront(rec.repostPostIDs, postID)
	return nil
}

func (s *memFriendshipRepo) RemoveReposted(_ context.Context, userID, postID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.record(userID)
	rec.repostPostIDs = pull(rec.repostPostIDs, postID)
	return nil
}

func (s *memFriendshipRepo) GetFollowerIDs(_ context.Context, userID uint64, limit, offset int) ([]uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slicePage(s.record(userID).followerIDs, limit, offset), nil
}

func (s *memFriendshipRepo) GetFriendIDs(_ context.Context, userID uint64, limit, offset int) ([]uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slicePage(s.record(userID).friendIDs, limit, offset), nil
}

func (s *memFriendshipRepo) GetAllFollowerIDs(_ context.Context, userID uint64) ([]uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]uint64, len(s.record(userID).followerIDs))
	copy(out, s.record(userID).followerIDs)
	return out, nil
}

type engagementRecord struct {
	likedBy      []uint64
	repostedBy   []uint64
	replyPostIDs []uint64
}

type memEngagementRepo struct {
	mu      sync.Mutex
	records map[uint64]*engagementRecord
}

func newMemEngagementRepo() *memEngagementRepo {
	return &memEngagementRepo{records: map[uint64]*engagementRecord{}}
}

func (s *memEngagementRepo) record(postID uint64) *engagementRecord {
	rec, ok := s.records[postID]
	if !ok {
		rec = &engagementRecord{}
		s.records[postID] = rec
	}
	return rec
}

func (s *memEngagementRepo) EnsureRecord(_ context.Context, postID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(postID)
	return nil
}

func (s *memEngagementRepo) RecordLike(_ context.Context, postID, userID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.record(postID)
	rec.likedBy = pushFront(rec.likedBy, userID)
	return nil
}

func (s *memEngagementRepo) RecordUnlike(_ context.Context, postID, userID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.record(postID)
	rec.likedBy = pull(rec.likedBy, userID)
	return nil
}

func (s *memEngagementRepo) RecordRepost(_ context.Context, postID, userID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.record(postID)
	rec.repostedBy = pushFront(rec.repostedBy, userID)
	return nil
}

func (s *memEngagementRepo) RecordUnrepost(_ context.Context, postID, userID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.record(postID)
	rec.repostedBy = pull(rec.repostedBy, userID)
	return nil
}

func (s *memEngagementRepo) RecordReply(_ context.Context, parentPostID, childPostID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.record(parentPostID)
	rec.replyPostIDs = pushFront(rec.replyPostIDs, childPostID)
	return nil
}

func (s *memEngagementRepo) CountLikers(_ context.Context, postID uint64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.record(postID).likedBy)), nil
}

func (s *memEngagementRepo) GetLikers(_ context.Context, postID uint64, limit, offset int) ([]uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slicePage(s.record(postID).likedBy, limit, offset), nil
}

func (s *memEngagementRepo) GetReposters(_ context.Context, postID uint64, limit, offset int) ([]uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slicePage(s.record(postID).repostedBy, limit, offset), nil
}

func (s *memEngagementRepo) GetReplies(_ context.Context, postID uint64, limit, offset int) ([]uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slicePage(s.record(postID).replyPostIDs, limit, offset), nil
}

type memTimelineRepo struct {
	mu        sync.Mutex
	timelines map[uint64][]mongo.TimelineEntry
}

func newMemTimelineRepo() *memTimelineRepo {
	return &memTimelineRepo{timelines: map[uint64][]mongo.TimelineEntry{}}
}

func (s *memTimelineRepo) EnsureTimeline(_ context.Context, userID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.timelines[userID]; !ok {
		s.timelines[userID] = []mongo.TimelineEntry{}
	}
	return nil
}

func (s *memTimelineRepo) AddEntries(_ context.Context, ownerID uint64, entries []mongo.TimelineEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing := s.timelines[ownerID]
	seen := make(map[uint64]struct{}, len(existing))
	for _, e := range existing {
		seen[e.PostID] = struct{}{}
	}
	for _, e := range entries {
		if _, ok := seen[e.PostID]; ok {
			continue
		}
		seen[e.PostID] = struct{}{}
		existing = append(existing, e)
	}
	sort.SliceStable(existing, func(i, j int) bool {
		return existing[i].PostedAt.After(existing[j].PostedAt)
	})
	s.timelines[ownerID] = existing
	return nil
}

func (s *memTimelineRepo) RemoveByAuthor(_ context.Context, ownerID, authorID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.timelines[ownerID][:0]
	for _, e := range s.timelines[ownerID] {
		if e.AuthorID != authorID {
			kept = append(kept, e)
		}
	}
	s.timelines[ownerID] = kept
	return nil
}

func (s *memTimelineRepo) RemovePostEverywhere(_ context.Context, postID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ownerID, entries := range s.timelines {
		kept := entries[:0]
		for _, e := range entries {
			if e.PostID != postID {
				kept = append(kept, e)
			}
		}
		s.timelines[ownerID] = kept
	}
	return nil
}

func (s *memTimelineRepo) GetEntries(_ context.Context, ownerID uint64, limit, offset int) ([]mongo.TimelineEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.timelines[ownerID]
	if offset >= len(entries) {
		return []mongo.TimelineEntry{}, nil
	}
	end := offset + limit
	if end > len(entries) {
		end = len(entries)
	}
	page := make([]mongo.TimelineEntry, end-offset)
	copy(page, entries[offset:end])
	return page, nil
}

type memSettingRepo struct {
	mu     sync.Mutex
	userID uint64
	postID uint64
}

func newMemSettingRepo() *memSettingRepo {
	return &memSettingRepo{}
}

func (s *memSettingRepo) NextUserID(_ context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID++
	return s.userID, nil
}

func (s *memSettingRepo) NextPostID(_ context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.postID++
	return s.postID, nil
}

type memTrendRepo struct {
	mu   sync.Mutex
	docs map[int]*mongo.TrendModel
}

func newMemTrendRepo() *memTrendRepo {
	return &memTrendRepo{docs: map[int]*mongo.TrendModel{}}
}

func (s *memTrendRepo) EnsureLocation(_ context.Context, woeid int, location string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[woeid]; !ok {
		s.docs[woeid] = &mongo.TrendModel{
			WOEID:     woeid,
			Location:  location,
			Trends:    []mongo.TrendEntry{},
			CreatedAt: time.Now(),
		}
	}
	return nil
}

func (s *memTrendRepo) ReplaceTrends(_ context.Context, woeid int, trends []mongo.TrendEntry, asOf time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc, ok := s.docs[woeid]; ok {
		doc.Trends = trends
		doc.AsOf = asOf
	}
	return nil
}

func (s *memTrendRepo) GetByWOEID(_ context.Context, woeid int) (*mongo.TrendModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[woeid]
	if !ok {
		return nil, nil
	}
	clone := *doc
	return &clone, nil
}

type memNotifier struct {
	mu     sync.Mutex
	events []*NotificationEvent
}

func newMemNotifier() *memNotifier {
	return &memNotifier{}
}

func (s *memNotifier) Notify(event *NotificationEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *memNotifier) recorded() []*NotificationEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*NotificationEvent, len(s.events))
	copy(out, s.events)
	return out
}
