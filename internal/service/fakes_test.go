package service

import (
	"Bastion/internal/model"
	"Bastion/internal/pkg/kafka"
	"Bastion/internal/pkg/screening"
	"Bastion/internal/repository"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
)

// published one event seen by recordingBroker
type published struct {
	mode    string
	target  any
	event   string
	payload any
}

type recordingBroker struct {
	mu     sync.Mutex
	events []published
}

func (b *recordingBroker) Broadcast(_ context.Context, event string, payload any) {
	b.add(published{mode: "broadcast", event: event, payload: payload})
}

func (b *recordingBroker) PublishToUser(_ context.Context, userID uint64, event string, payload any) {
	b.add(published{mode: "user", target: userID, event: event, payload: payload})
}

func (b *recordingBroker) PublishToTopic(_ context.Context, topic string, event string, payload any) {
	b.add(published{mode: "topic", target: topic, event: event, payload: payload})
}

func (b *recordingBroker) add(p published) {
	b.mu.Lock()
	b.events = append(b.events, p)
	b.mu.Unlock()
}

func (b *recordingBroker) byEvent(event string) []published {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []published
	for _, e := range b.events {
		if e.event == event {
			out = append(out, e)
		}
	}
	return out
}

// denyScorer scores every text as toxic
type denyScorer struct{}

func (denyScorer) Score(context.Context, string) (float64, error) { return 0.99, nil }
func (denyScorer) Enabled() bool                                  { return true }

// brokenScorer simulates an unreachable scoring service
type brokenScorer struct{}

func (brokenScorer) Score(context.Context, string) (float64, error) {
	return 0, errors.New("dial tcp: connection refused")
}
func (brokenScorer) Enabled() bool { return true }

func allowAll() screening.Screener { return screening.NewGate(nil, 0) }

// The fakes embed the repository interface; calling a method the fake does not
// override panics, which flags unexpected repository traffic in a test.

type fakeUserRepo struct {
	repository.UserRepo
	users   map[uint64]*model.User
	updates []map[string]any
}

func (r *fakeUserRepo) GetUserById(_ context.Context, id uint64) (*model.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) UpdateUserFields(_ context.Context, id uint64, fields map[string]any) error {
	r.updates = append(r.updates, fields)
	u := r.users[id]
	if u == nil {
		return nil
	}
	for k, v := range fields {
		switch k {
		case "fullname":
			u.Fullname = v.(string)
		case "bio":
			u.Bio = v.(string)
		case "location":
			u.Location = v.(string)
		case "website":
			u.Website = v.(string)
		}
	}
	return nil
}

type fakePostRepo struct {
	repository.PostRepo
	mu      sync.Mutex
	posts   map[uint64]*model.Post
	nextID  uint64
	created int
	deleted []uint64
}

func newFakePostRepo(posts ...*model.Post) *fakePostRepo {
	r := &fakePostRepo{posts: make(map[uint64]*model.Post), nextID: 100}
	for _, p := range posts {
		r.posts[p.ID] = p
	}
	return r
}

func (r *fakePostRepo) CreatePost(_ context.Context, p *model.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = r.nextID
	p.CreatedAt = time.Now()
	r.posts[p.ID] = p
	r.created++
	return nil
}

func (r *fakePostRepo) GetPostByID(_ context.Context, id uint64) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.posts[id], nil
}

func (r *fakePostRepo) DeletePost(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.posts, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakePostActionRepo struct {
	repository.PostActionRepo
	mu       sync.Mutex
	comments map[uint64]*model.PostComment
	likes    map[[2]uint64]bool
	nextID   uint64
}

func newFakePostActionRepo() *fakePostActionRepo {
	return &fakePostActionRepo{
		comments: make(map[uint64]*model.PostComment),
		likes:    make(map[[2]uint64]bool),
		nextID:   500,
	}
}

func (r *fakePostActionRepo) ToggleLike(_ context.Context, userID, postID uint64) (bool, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]uint64{userID, postID}
	liked := !r.likes[key]
	if liked {
		r.likes[key] = true
	} else {
		delete(r.likes, key)
	}
	var count int64
	for k := range r.likes {
		if k[1] == postID {
			count++
		}
	}
	return liked, count, nil
}

func (r *fakePostActionRepo) CreateComment(_ context.Context, c *model.PostComment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	c.ID = r.nextID
	r.comments[c.ID] = c
	return nil
}

func (r *fakePostActionRepo) GetCommentByID(_ context.Context, id uint64) (*model.PostComment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.comments[id], nil
}

func (r *fakePostActionRepo) DeleteComment(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.comments, id)
	return nil
}

func (r *fakePostActionRepo) UpdateCommentStatus(_ context.Context, id uint64, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.comments[id]; ok {
		c.Status = status
	}
	return nil
}

type fakeMessageRepo struct {
	repository.MessageRepo
	messages []*model.Message
}

func (r *fakeMessageRepo) CreateMessage(_ context.Context, m *model.Message) error {
	m.ID = uint64(len(r.messages) + 1)
	m.CreatedAt = time.Now()
	r.messages = append(r.messages, m)
	return nil
}

func (r *fakeMessageRepo) GetMessageByID(_ context.Context, id uint64) (*model.Message, error) {
	for _, m := range r.messages {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMessageRepo) MarkRead(_ context.Context, id uint64) error {
	for _, m := range r.messages {
		if m.ID == id {
			m.IsRead = true
		}
	}
	return nil
}

func (r *fakeMessageRepo) MarkReadFrom(_ context.Context, receiverID, senderID uint64) (int64, error) {
	var n int64
	for _, m := range r.messages {
		if m.ReceiverID == receiverID && m.SenderID == senderID && !m.IsRead {
			m.IsRead = true
			n++
		}
	}
	return n, nil
}

type fakeNotificationRepo struct {
	repository.NotificationRepo
	createErr error
	created   []*model.Notification
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	n.ID = uint64(len(r.created) + 1)
	r.created = append(r.created, n)
	return nil
}

type fakeUserFollowRepo struct {
	repository.UserFollowRepo
	edges map[[2]uint64]bool
}

func (r *fakeUserFollowRepo) ToggleUserFollow(_ context.Context, followerID, followingID uint64) (bool, error) {
	key := [2]uint64{followerID, followingID}
	if r.edges[key] {
		delete(r.edges, key)
		return false, nil
	}
	r.edges[key] = true
	return true, nil
}

func (r *fakeUserFollowRepo) CreateUserFollow(_ context.Context, followerID, followingID uint64) (bool, error) {
	key := [2]uint64{followerID, followingID}
	if r.edges[key] {
		return false, nil
	}
	r.edges[key] = true
	return true, nil
}

func (r *fakeUserFollowRepo) DeleteUserFollow(_ context.Context, followerID, followingID uint64) (bool, error) {
	key := [2]uint64{followerID, followingID}
	existed := r.edges[key]
	delete(r.edges, key)
	return existed, nil
}

type fakeCommunityRepo struct {
	repository.CommunityRepo
	communities map[uint64]*model.Community
	members     map[[2]uint64]*model.CommunityMember
	updated     []map[string]any
	deleted     []uint64
}

func newFakeCommunityRepo(communities ...*model.Community) *fakeCommunityRepo {
	r := &fakeCommunityRepo{
		communities: make(map[uint64]*model.Community),
		members:     make(map[[2]uint64]*model.CommunityMember),
	}
	for _, c := range communities {
		r.communities[c.ID] = c
		r.members[[2]uint64{c.ID, c.CreatorID}] = &model.CommunityMember{CommunityID: c.ID, UserID: c.CreatorID, Role: model.MemberRoleAdmin}
	}
	return r
}

func (r *fakeCommunityRepo) GetCommunityByID(_ context.Context, id uint64) (*model.Community, error) {
	return r.communities[id], nil
}

func (r *fakeCommunityRepo) GetCommunityByName(_ context.Context, name string) (*model.Community, error) {
	for _, c := range r.communities {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCommunityRepo) UpdateCommunityFields(_ context.Context, _ uint64, fields map[string]any) error {
	r.updated = append(r.updated, fields)
	return nil
}

func (r *fakeCommunityRepo) DeleteCommunity(_ context.Context, id uint64) error {
	delete(r.communities, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeCommunityRepo) AddMember(_ context.Context, m *model.CommunityMember) error {
	key := [2]uint64{m.CommunityID, m.UserID}
	if r.members[key] != nil {
		return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	}
	r.members[key] = m
	return nil
}

func (r *fakeCommunityRepo) RemoveMember(_ context.Context, communityID, userID uint64) (int64, error) {
	key := [2]uint64{communityID, userID}
	if r.members[key] == nil {
		return 0, nil
	}
	delete(r.members, key)
	return 1, nil
}

func (r *fakeCommunityRepo) GetMember(_ context.Context, communityID, userID uint64) (*model.CommunityMember, error) {
	return r.members[[2]uint64{communityID, userID}], nil
}

func (r *fakeCommunityRepo) CountMembers(_ context.Context, communityID uint64) (int64, error) {
	var n int64
	for k := range r.members {
		if k[0] == communityID {
			n++
		}
	}
	return n, nil
}

func (r *fakeCommunityRepo) UpdateMemberRole(_ context.Context, communityID, userID uint64, role string) error {
	if m := r.members[[2]uint64{communityID, userID}]; m != nil {
		m.Role = role
	}
	return nil
}

type recordingProducer struct {
	events []kafka.ActivityEvent
}

func (p *recordingProducer) Emit(_ context.Context, ev kafka.ActivityEvent) error {
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingProducer) Close() error { return nil }

func testUsers() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint64]*model.User{
		1: {ID: 1, Username: "alice", Fullname: "Alice A"},
		2: {ID: 2, Username: "bob"},
	}}
}
