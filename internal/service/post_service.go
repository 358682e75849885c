package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"blog-cms-be/internal/dto"
	"blog-cms-be/internal/entity"
	"blog-cms-be/internal/repository/specification"
	"blog-cms-be/internal/repository/unitofwork"
	"blog-cms-be/pkg/document"
	"blog-cms-be/pkg/events"
	"blog-cms-be/pkg/media"

	"github.com/google/uuid"
)

// ErrContentWipe rejects a save that would replace a post that has
// content with an empty document. Editors autosave aggressively; a
// blank buffer racing a slow load must not destroy the stored body.
var ErrContentWipe = errors.New("refusing to overwrite existing content with an empty document")

type IPostService interface {
	Create(ctx context.Context, req *dto.CreatePostRequest) (*dto.CreatePostResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowPostResponse, error)
	ShowView(ctx context.Context, id uuid.UUID) (*dto.ShowPostViewResponse, error)
	Update(ctx context.Context, req *dto.UpdatePostRequest) (*dto.UpdatePostResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, query string, limit, offset int) (*dto.ListPostsResponse, error)
}

type postService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	mediaStore       media.Store
	resolver         *media.Resolver
}

func NewPostService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	mediaStore media.Store,
	resolver *media.Resolver,
) IPostService {
	return &postService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		mediaStore:       mediaStore,
		resolver:         resolver,
	}
}

// processedContent is the stored form of an editor payload.
type processedContent struct {
	Serialized string
	Plaintext  string
	WordCount  int
	Empty      bool
}

// processContent parses, normalizes and re-serializes editor content.
// Parse errors bubble up so the transport layer can answer 400.
func processContent(raw string) (*processedContent, error) {
	if strings.TrimSpace(raw) == "" {
		return &processedContent{Empty: true}, nil
	}

	doc, err := document.Parse(raw)
	if err != nil {
		return nil, err
	}

	serialized, err := document.Serialize(doc)
	if err != nil {
		return nil, err
	}

	pc := &processedContent{Serialized: serialized}
	if text, ok := document.Plaintext(doc); ok {
		pc.Plaintext = text
		pc.WordCount = document.WordCount(text)
	}
	pc.Empty = pc.Plaintext == "" && len(document.CollectMediaIDs(doc)) == 0
	return pc, nil
}

func (s *postService) Create(ctx context.Context, req *dto.CreatePostRequest) (*dto.CreatePostResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	pc, err := processContent(req.Content)
	if err != nil {
		return nil, err
	}

	tags, err := s.ensureTags(ctx, uow, req.Tags)
	if err != nil {
		return nil, err
	}

	post := entity.Post{
		Id:        uuid.New(),
		Title:     req.Title,
		Slug:      req.Slug,
		Content:   pc.Serialized,
		Plaintext: pc.Plaintext,
		WordCount: pc.WordCount,
		Tags:      tags,
		CreatedAt: time.Now(),
	}

	if err := uow.PostRepository().Create(ctx, &post); err != nil {
		return nil, err
	}

	s.publishContentChanged(ctx, post.Id)

	return &dto.CreatePostResponse{Id: post.Id}, nil
}

func (s *postService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowPostResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	post, err := uow.PostRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.WithTags{},
	)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, nil // Not found
	}

	html, err := s.renderHTML(ctx, post.Content)
	if err != nil {
		return nil, err
	}

	tagNames := make([]string, 0, len(post.Tags))
	for _, t := range post.Tags {
		tagNames = append(tagNames, t.Name)
	}

	return &dto.ShowPostResponse{
		Id:             post.Id,
		Title:          post.Title,
		Slug:           post.Slug,
		Content:        post.Content,
		Html:           html,
		Plaintext:      post.Plaintext,
		WordCount:      post.WordCount,
		Tags:           tagNames,
		FeatureMediaId: post.FeatureMediaId,
		PublishedAt:    post.PublishedAt,
		CreatedAt:      post.CreatedAt,
		UpdatedAt:      post.UpdatedAt,
	}, nil
}

func (s *postService) ShowView(ctx context.Context, id uuid.UUID) (*dto.ShowPostViewResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	post, err := uow.PostRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, nil
	}

	var view *document.ViewNode
	if strings.TrimSpace(post.Content) != "" {
		doc, err := document.Parse(post.Content)
		if err != nil {
			return nil, fmt.Errorf("stored content for post %s is unreadable: %w", post.Id, err)
		}
		resolved := s.resolver.ResolveMany(ctx, document.CollectMediaIDs(doc))
		view = document.RenderView(doc, resolved)
	}

	return &dto.ShowPostViewResponse{
		Id:    post.Id,
		Title: post.Title,
		View:  view,
	}, nil
}

func (s *postService) Update(ctx context.Context, req *dto.UpdatePostRequest) (*dto.UpdatePostResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	post, err := uow.PostRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, nil
	}

	pc, err := processContent(req.Content)
	if err != nil {
		return nil, err
	}
	if pc.Empty && strings.TrimSpace(post.Plaintext) != "" {
		return nil, ErrContentWipe
	}

	tags, err := s.ensureTags(ctx, uow, req.Tags)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	post.Title = req.Title
	post.Content = pc.Serialized
	post.Plaintext = pc.Plaintext
	post.WordCount = pc.WordCount
	post.Tags = tags
	post.UpdatedAt = &now

	if err := uow.PostRepository().Update(ctx, post); err != nil {
		return nil, err
	}

	s.publishContentChanged(ctx, post.Id)

	return &dto.UpdatePostResponse{
		Id:        post.Id,
		WordCount: post.WordCount,
	}, nil
}

func (s *postService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	post, err := uow.PostRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if post == nil {
		return nil
	}

	if err := uow.PostRepository().Delete(ctx, id); err != nil {
		return err
	}

	// Media rows and blobs go with the post.
	return s.mediaStore.DeleteOwned(ctx, media.OwnerPost, id.String())
}

func (s *postService) List(ctx context.Context, query string, limit, offset int) (*dto.ListPostsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if limit <= 0 || limit > 100 {
		limit = 20
	}

	specs := []specification.Specification{}
	if strings.TrimSpace(query) != "" {
		specs = append(specs, specification.PostSearchQuery{Query: query})
	}

	total, err := uow.PostRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	posts, err := uow.PostRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	summaries := make([]*dto.PostSummary, 0, len(posts))
	for _, p := range posts {
		summaries = append(summaries, &dto.PostSummary{
			Id:          p.Id,
			Title:       p.Title,
			Slug:        p.Slug,
			Excerpt:     excerpt(p.Plaintext, 240),
			WordCount:   p.WordCount,
			PublishedAt: p.PublishedAt,
			CreatedAt:   p.CreatedAt,
		})
	}

	return &dto.ListPostsResponse{Posts: summaries, Total: total}, nil
}

func (s *postService) renderHTML(ctx context.Context, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", nil
	}
	doc, err := document.Parse(content)
	if err != nil {
		return "", fmt.Errorf("stored content is unreadable: %w", err)
	}
	resolved := s.resolver.ResolveMany(ctx, document.CollectMediaIDs(doc))
	return document.RenderHTML(doc, func(mediaID string) (string, bool) {
		url, ok := resolved[mediaID]
		return url, ok
	}), nil
}

// ensureTags resolves tag names to rows, creating missing ones.
func (s *postService) ensureTags(ctx context.Context, uow unitofwork.UnitOfWork, names []string) ([]*entity.Tag, error) {
	var tags []*entity.Tag
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		tag, err := uow.TagRepository().FindOne(ctx, specification.ByTagName{Name: name})
		if err != nil {
			return nil, err
		}
		if tag == nil {
			tag = &entity.Tag{
				Id:        uuid.New(),
				Name:      name,
				Slug:      slugify(name),
				CreatedAt: time.Now(),
			}
			if err := uow.TagRepository().Create(ctx, tag); err != nil {
				return nil, err
			}
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// publishContentChanged notifies the indexer. Indexing is auxiliary, so
// a bus failure never fails the request.
func (s *postService) publishContentChanged(ctx context.Context, postId uuid.UUID) {
	if err := s.publisherService.PublishEvent(ctx, events.PostContentChanged(postId)); err != nil {
		fmt.Printf("[WARN] Failed to publish POST_CONTENT_CHANGED event: %v\n", err)
	}
}

func excerpt(text string, max int) string {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
	if len(text) <= max {
		return text
	}
	cut := text[:max]
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return cut + "…"
}

func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
