package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-cms-be/internal/dto"
	"blog-cms-be/internal/entity"
	"blog-cms-be/internal/repository/contract"
	"blog-cms-be/internal/repository/specification"
	"blog-cms-be/internal/repository/unitofwork"
	"blog-cms-be/pkg/document"
	"blog-cms-be/pkg/events"
	"blog-cms-be/pkg/media"
)

// In-memory repositories that interpret the specification structs the
// service layer actually uses.

type fakePostRepo struct {
	posts map[uuid.UUID]*entity.Post
}

func (r *fakePostRepo) Create(_ context.Context, post *entity.Post) error {
	clone := *post
	r.posts[post.Id] = &clone
	return nil
}

func (r *fakePostRepo) Update(_ context.Context, post *entity.Post) error {
	clone := *post
	r.posts[post.Id] = &clone
	return nil
}

func (r *fakePostRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Post, error) {
	for _, p := range r.posts {
		if postMatches(p, specs) {
			clone := *p
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakePostRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Post, error) {
	var out []*entity.Post
	for _, p := range r.posts {
		if postMatches(p, specs) {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakePostRepo) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	var n int64
	for _, p := range r.posts {
		if postMatches(p, specs) {
			n++
		}
	}
	return n, nil
}

func postMatches(p *entity.Post, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if p.Id != s.ID {
				return false
			}
		case specification.ByLegacyID:
			if p.LegacyId != s.LegacyID {
				return false
			}
		}
	}
	return true
}

type fakeTagRepo struct {
	tags map[string]*entity.Tag
}

func (r *fakeTagRepo) Create(_ context.Context, tag *entity.Tag) error {
	clone := *tag
	r.tags[tag.Name] = &clone
	return nil
}

func (r *fakeTagRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func (r *fakeTagRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Tag, error) {
	for _, spec := range specs {
		if s, ok := spec.(specification.ByTagName); ok {
			if t, found := r.tags[s.Name]; found {
				clone := *t
				return &clone, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeTagRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.Tag, error) {
	return nil, nil
}

type fakeUow struct {
	posts *fakePostRepo
	tags  *fakeTagRepo
}

func (u *fakeUow) Begin(context.Context) error               { return nil }
func (u *fakeUow) Commit() error                             { return nil }
func (u *fakeUow) Rollback() error                           { return nil }
func (u *fakeUow) PostRepository() contract.PostRepository   { return u.posts }
func (u *fakeUow) TagRepository() contract.TagRepository     { return u.tags }
func (u *fakeUow) MediaRepository() contract.MediaRepository { return nil }

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork { return f.uow }

type fakePublisher struct {
	published []events.Event
}

func (p *fakePublisher) Publish(context.Context, []byte) error { return nil }

func (p *fakePublisher) PublishEvent(_ context.Context, evt events.Event) error {
	p.published = append(p.published, evt)
	return nil
}

type nullMediaStore struct {
	deletedOwners []string
}

func (s *nullMediaStore) Upload(context.Context, string, string, []media.File, media.UploadOptions) ([]media.Record, error) {
	return nil, nil
}

func (s *nullMediaStore) ResolveURL(context.Context, string) (string, error) {
	return "", errors.New("no media in this test")
}

func (s *nullMediaStore) ResolveMany(context.Context, []string) (map[string]string, error) {
	return map[string]string{}, nil
}

func (s *nullMediaStore) Delete(context.Context, string) error { return nil }

func (s *nullMediaStore) DeleteOwned(_ context.Context, ownerType, ownerID string) error {
	s.deletedOwners = append(s.deletedOwners, ownerType+"/"+ownerID)
	return nil
}

func newPostServiceFixture() (*fakeUow, *fakePublisher, *nullMediaStore, IPostService) {
	uow := &fakeUow{
		posts: &fakePostRepo{posts: map[uuid.UUID]*entity.Post{}},
		tags:  &fakeTagRepo{tags: map[string]*entity.Tag{}},
	}
	pub := &fakePublisher{}
	store := &nullMediaStore{}
	svc := NewPostService(&fakeUowFactory{uow: uow}, pub, store, media.NewResolver(store))
	return uow, pub, store, svc
}

const sampleContent = `{"root":{"type":"root","children":[{"type":"paragraph","version":1,"children":[{"type":"text","version":1,"text":"hello wide world"}]}],"version":1}}`

const emptyContent = `{"root":{"type":"root","children":[],"version":1}}`

const mediaOnlyContent = `{"root":{"type":"root","children":[{"type":"image","version":1,"mediaId":"4a1d1a46-9f2e-4e83-8f6a-2d8f6f0b9f10","src":"https://cdn/a.jpg"}],"version":1}}`

func TestCreateExtractsPlaintext(t *testing.T) {
	uow, pub, _, svc := newPostServiceFixture()

	res, err := svc.Create(context.Background(), &dto.CreatePostRequest{
		Title:   "First",
		Slug:    "first",
		Content: sampleContent,
		Tags:    []string{"go", "Go ", ""},
	})
	require.NoError(t, err)

	stored := uow.posts.posts[res.Id]
	require.NotNil(t, stored)
	assert.Equal(t, "hello wide world", stored.Plaintext)
	assert.Equal(t, 3, stored.WordCount)
	assert.True(t, document.Looks(stored.Content))

	require.Len(t, pub.published, 1)
	assert.Equal(t, "POST_CONTENT_CHANGED", pub.published[0].EventType())
}

func TestCreateRejectsMalformedContent(t *testing.T) {
	_, _, _, svc := newPostServiceFixture()

	_, err := svc.Create(context.Background(), &dto.CreatePostRequest{
		Title:   "Broken",
		Slug:    "broken",
		Content: `{"root": unparseable`,
	})

	var parseErr *document.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, document.ErrNotJSON, parseErr.Kind)
}

func TestUpdateRejectsContentWipe(t *testing.T) {
	uow, _, _, svc := newPostServiceFixture()

	id := uuid.New()
	uow.posts.posts[id] = &entity.Post{
		Id:        id,
		Title:     "Kept",
		Plaintext: "valuable words",
		WordCount: 2,
	}

	_, err := svc.Update(context.Background(), &dto.UpdatePostRequest{
		Id:      id,
		Title:   "Kept",
		Content: emptyContent,
	})
	assert.ErrorIs(t, err, ErrContentWipe)
	assert.Equal(t, "valuable words", uow.posts.posts[id].Plaintext, "stored content untouched")
}

func TestUpdateMediaOnlyContentIsNotAWipe(t *testing.T) {
	uow, _, _, svc := newPostServiceFixture()

	id := uuid.New()
	uow.posts.posts[id] = &entity.Post{
		Id:        id,
		Title:     "Gallery",
		Plaintext: "caption text",
		WordCount: 2,
	}

	// No prose, but a referenced image means the document has content.
	res, err := svc.Update(context.Background(), &dto.UpdatePostRequest{
		Id:      id,
		Title:   "Gallery",
		Content: mediaOnlyContent,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.WordCount)
	assert.Empty(t, uow.posts.posts[id].Plaintext)
}

func TestShowRendersHtml(t *testing.T) {
	uow, _, _, svc := newPostServiceFixture()

	id := uuid.New()
	uow.posts.posts[id] = &entity.Post{
		Id:      id,
		Title:   "Rendered",
		Content: sampleContent,
	}

	res, err := svc.Show(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Contains(t, res.Html, "hello wide world")
}

func TestUpdateAllowsEmptyOverEmpty(t *testing.T) {
	uow, _, _, svc := newPostServiceFixture()

	id := uuid.New()
	uow.posts.posts[id] = &entity.Post{Id: id, Title: "Blank"}

	res, err := svc.Update(context.Background(), &dto.UpdatePostRequest{
		Id:      id,
		Title:   "Still blank",
		Content: emptyContent,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.WordCount)
	assert.Equal(t, "Still blank", uow.posts.posts[id].Title)
}

func TestUpdateRecomputesSearchColumns(t *testing.T) {
	uow, pub, _, svc := newPostServiceFixture()

	id := uuid.New()
	uow.posts.posts[id] = &entity.Post{Id: id, Title: "Old", Plaintext: "old text", WordCount: 2}

	res, err := svc.Update(context.Background(), &dto.UpdatePostRequest{
		Id:      id,
		Title:   "New",
		Content: sampleContent,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.WordCount)
	assert.Equal(t, "hello wide world", uow.posts.posts[id].Plaintext)
	require.Len(t, pub.published, 1)
}

func TestDeleteRemovesOwnedMedia(t *testing.T) {
	uow, _, store, svc := newPostServiceFixture()

	id := uuid.New()
	uow.posts.posts[id] = &entity.Post{Id: id, Title: "Gone"}

	require.NoError(t, svc.Delete(context.Background(), id))
	assert.Nil(t, uow.posts.posts[id])
	assert.Equal(t, []string{"post/" + id.String()}, store.deletedOwners)
}
