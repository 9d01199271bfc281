package usecase

import (
	"context"

	"sweet-shop/internal/data/entity"
	"sweet-shop/internal/data/repository"

	"github.com/google/uuid"
)

// In-memory fakes for the repository interfaces. Each fake counts its
// calls so tests can assert which repositories a service touched.

type fakeUserRepo struct {
	users       map[uuid.UUID]*entity.User
	createCalls int
	updateCalls int
	findCalls   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.createCalls++
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	f.findCalls++
	if user, ok := f.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.findCalls++
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.updateCalls++
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

type fakeSessionRepo struct {
	sessions    map[string]*entity.Session
	createCalls int
	revokeCalls int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*entity.Session)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	f.createCalls++
	copied := *session
	f.sessions[session.Token.String()] = &copied
	return nil
}

func (f *fakeSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	if session, ok := f.sessions[token]; ok && session.RevokedAt == nil {
		copied := *session
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeSessionRepo) Revoke(ctx context.Context, token string) error {
	f.revokeCalls++
	delete(f.sessions, token)
	return nil
}

type fakeConfirmationRepo struct {
	confirmations map[string]*entity.Confirmation
	createCalls   int
	usedCalls     int
}

func newFakeConfirmationRepo() *fakeConfirmationRepo {
	return &fakeConfirmationRepo{confirmations: make(map[string]*entity.Confirmation)}
}

func (f *fakeConfirmationRepo) Create(ctx context.Context, confirmation *entity.Confirmation) error {
	f.createCalls++
	copied := *confirmation
	f.confirmations[confirmation.Token.String()] = &copied
	return nil
}

func (f *fakeConfirmationRepo) FindValidToken(ctx context.Context, token string) (*entity.Confirmation, error) {
	if confirmation, ok := f.confirmations[token]; ok && confirmation.UsedAt == nil {
		copied := *confirmation
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeConfirmationRepo) MarkAsUsed(ctx context.Context, id uuid.UUID) error {
	f.usedCalls++
	return nil
}

type fakeProfileRepo struct {
	profiles    map[uuid.UUID]*entity.Profile
	createCalls int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*entity.Profile)}
}

func (f *fakeProfileRepo) Create(ctx context.Context, profile *entity.Profile) error {
	f.createCalls++
	if _, exists := f.profiles[profile.ID]; exists {
		// Mirrors ON CONFLICT DO NOTHING
		return nil
	}
	copied := *profile
	f.profiles[profile.ID] = &copied
	return nil
}

func (f *fakeProfileRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	if profile, ok := f.profiles[id]; ok {
		copied := *profile
		return &copied, nil
	}
	return nil, nil
}

type fakeProductRepo struct {
	products       map[uuid.UUID]*entity.Product
	findAllCalls   int
	decrementCalls int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
}

func (f *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	copied := *product
	f.products[product.ID] = &copied
	return nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	if product, ok := f.products[id]; ok {
		copied := *product
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeProductRepo) FindAll(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	f.findAllCalls++
	var out []*entity.Product
	for _, product := range f.products {
		if filter.Category != "" && string(product.Category) != filter.Category {
			continue
		}
		copied := *product
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	copied := *product
	f.products[product.ID] = &copied
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (bool, error) {
	f.decrementCalls++
	product, ok := f.products[id]
	if !ok || product.InStock < quantity {
		return false, nil
	}
	product.InStock -= quantity
	return true, nil
}

type fakeCartRepo struct {
	carts       map[uuid.UUID][]entity.CartItem
	saveCalls   int
	deleteCalls int
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[uuid.UUID][]entity.CartItem)}
}

func (f *fakeCartRepo) Load(ctx context.Context, userID uuid.UUID) ([]entity.CartItem, error) {
	items, ok := f.carts[userID]
	if !ok {
		return nil, nil
	}
	out := make([]entity.CartItem, len(items))
	copy(out, items)
	return out, nil
}

func (f *fakeCartRepo) Save(ctx context.Context, userID uuid.UUID, items []entity.CartItem) error {
	f.saveCalls++
	stored := make([]entity.CartItem, len(items))
	copy(stored, items)
	f.carts[userID] = stored
	return nil
}

func (f *fakeCartRepo) Delete(ctx context.Context, userID uuid.UUID) error {
	f.deleteCalls++
	delete(f.carts, userID)
	return nil
}

func newFakeRepository() *repository.Repository {
	return &repository.Repository{
		User:         newFakeUserRepo(),
		Session:      newFakeSessionRepo(),
		Confirmation: newFakeConfirmationRepo(),
		Profile:      newFakeProfileRepo(),
		Product:      newFakeProductRepo(),
		Cart:         newFakeCartRepo(),
	}
}
