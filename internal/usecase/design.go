package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DuplicateNamePrefix marks a duplicated design's display name.
const DuplicateNamePrefix = "Copy of "

// Design is a user's editable artifact, optionally derived from a
// template. TemplateID/TemplateName and UserID are soft references,
// never checked for existence.
type Design struct {
	ID           uuid.UUID
	Name         string
	Description  string
	TemplateID   string
	TemplateName string
	Dimensions   Dimensions
	Elements     []Element
	Thumbnail    string
	UserID       string
	Tags         []string
	IsFavorite   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ListDesignsOption struct {
	Skip  int
	Limit int

	UserID     string
	Search     string
	Tags       []string
	IsFavorite *bool
}

// UpdateDesignOption is a partial patch: nil fields keep prior values.
type UpdateDesignOption struct {
	Name        *string
	Description *string
	Elements    *[]Element
	Thumbnail   *string
	Tags        *[]string
	IsFavorite  *bool
}

type UserDesignStats struct {
	Total     int
	Favorites int
	Recent    []Design
}

func (u Usecase) ListDesigns(ctx context.Context, opt ListDesignsOption) ([]Design, int, error) {
	return u.repo.ListDesigns(ctx, opt)
}

func (u Usecase) GetDesignByID(ctx context.Context, id uuid.UUID) (Design, error) {
	return u.repo.GetDesignByID(ctx, id)
}

func (u Usecase) CreateDesign(ctx context.Context, d Design) (Design, error) {
	elements, err := NormalizeElements(d.Elements)
	if err != nil {
		return Design{}, err
	}
	d.Elements = elements

	return u.repo.CreateDesign(ctx, d)
}

func (u Usecase) UpdateDesign(ctx context.Context, id uuid.UUID, opt UpdateDesignOption) (Design, error) {
	if opt.Elements != nil {
		elements, err := NormalizeElements(*opt.Elements)
		if err != nil {
			return Design{}, err
		}
		opt.Elements = &elements
	}

	return u.repo.UpdateDesign(ctx, id, opt)
}

func (u Usecase) DeleteDesign(ctx context.Context, id uuid.UUID) error {
	return u.repo.DeleteDesign(ctx, id)
}

// DuplicateDesign creates a deep copy of an existing design with a fresh
// id and timestamps. The copy shares nothing with the source afterwards.
func (u Usecase) DuplicateDesign(ctx context.Context, id uuid.UUID) (Design, error) {
	src, err := u.repo.GetDesignByID(ctx, id)
	if err != nil {
		return Design{}, err
	}

	dup := src
	dup.ID = uuid.Nil
	dup.Name = DuplicateNamePrefix + src.Name
	dup.CreatedAt = time.Time{}
	dup.UpdatedAt = time.Time{}
	dup.Elements = make([]Element, len(src.Elements))
	copy(dup.Elements, src.Elements)
	dup.Tags = make([]string, len(src.Tags))
	copy(dup.Tags, src.Tags)

	return u.repo.CreateDesign(ctx, dup)
}

// ToggleDesignFavorite flips isFavorite with a single conditional update
// at the store, so concurrent toggles cannot lose writes.
func (u Usecase) ToggleDesignFavorite(ctx context.Context, id uuid.UUID) (bool, error) {
	d, err := u.repo.ToggleDesignFavorite(ctx, id)
	if err != nil {
		return false, err
	}
	return d.IsFavorite, nil
}

func (u Usecase) GetUserDesignStats(ctx context.Context, userID string) (UserDesignStats, error) {
	total, err := u.repo.CountDesigns(ctx, ListDesignsOption{UserID: userID})
	if err != nil {
		return UserDesignStats{}, err
	}

	fav := true
	favorites, err := u.repo.CountDesigns(ctx, ListDesignsOption{
		UserID:     userID,
		IsFavorite: &fav,
	})
	if err != nil {
		return UserDesignStats{}, err
	}

	recent, _, err := u.repo.ListDesigns(ctx, ListDesignsOption{
		UserID: userID,
		Limit:  5,
	})
	if err != nil {
		return UserDesignStats{}, err
	}

	return UserDesignStats{
		Total:     total,
		Favorites: favorites,
		Recent:    recent,
	}, nil
}
