package services

import (
	"context"
	"contact-book/database"
	"contact-book/models"
	"io"
)

// ContactService is the only way the HTTP layer reaches contact storage.
// It forwards to the repository and adds the favorite toggle and photo import.
type ContactService struct {
	repo   ContactRepository
	photos PhotoStore
}

// NewContactService creates a new contact service
func NewContactService(repo ContactRepository, photos PhotoStore) *ContactService {
	return &ContactService{
		repo:   repo,
		photos: photos,
	}
}

// Insert stores contact, assigning an ID when it has none.
// Inserting an ID that already exists is silently ignored.
func (cs *ContactService) Insert(ctx context.Context, contact *models.Contact) (int64, error) {
	return cs.repo.InsertContact(ctx, contact)
}

// Update replaces the stored contact with the same ID
func (cs *ContactService) Update(ctx context.Context, contact *models.Contact) error {
	return cs.repo.UpdateContact(ctx, contact)
}

func (cs *ContactService) Delete(ctx context.Context, contact *models.Contact) error {
	return cs.repo.DeleteContact(ctx, contact)
}

func (cs *ContactService) All(ctx context.Context) ([]models.Contact, error) {
	return cs.repo.GetAllContacts(ctx)
}

func (cs *ContactService) Favorites(ctx context.Context) ([]models.Contact, error) {
	return cs.repo.GetFavoriteContacts(ctx)
}

func (cs *ContactService) NonFavorites(ctx context.Context) ([]models.Contact, error) {
	return cs.repo.GetNonFavoriteContacts(ctx)
}

// Subscribe observes one of the three contact lists
func (cs *ContactService) Subscribe(ctx context.Context, q database.Query) (*database.Subscription, error) {
	return cs.repo.Subscribe(ctx, q)
}

// Get retrieves a contact by ID
func (cs *ContactService) Get(ctx context.Context, id int64) (*models.Contact, error) {
	if id <= 0 {
		return nil, ErrInvalidContactID
	}

	contact, err := cs.repo.GetContact(ctx, id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, ErrContactNotFound
	}

	return contact, nil
}

// Add creates a contact from its fields and returns it with the assigned ID
func (cs *ContactService) Add(ctx context.Context, image, name, phoneNumber, email string) (*models.Contact, error) {
	contact := &models.Contact{
		ID:          0,
		Image:       image,
		Name:        name,
		PhoneNumber: phoneNumber,
		Email:       email,
	}

	if _, err := cs.repo.InsertContact(ctx, contact); err != nil {
		return nil, err
	}

	return contact, nil
}

// AddWithPhoto imports photo (if any) and creates the contact. A missing or
// failed photo falls back to the default image.
func (cs *ContactService) AddWithPhoto(ctx context.Context, req models.CreateContactRequest, photo io.Reader) (*models.Contact, error) {
	image := cs.ImportPhoto(req.Name, photo)
	if image == "" {
		image = cs.DefaultImage()
	}

	return cs.Add(ctx, image, req.Name, req.PhoneNumber, req.Email)
}

// Edit applies req to the contact with id. An empty req.Image keeps the
// current photo.
func (cs *ContactService) Edit(ctx context.Context, id int64, req models.UpdateContactRequest) (*models.Contact, error) {
	current, err := cs.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.Name = req.Name
	updated.PhoneNumber = req.PhoneNumber
	updated.Email = req.Email
	if req.Image != "" {
		updated.Image = req.Image
	}

	if err := cs.repo.UpdateContact(ctx, &updated); err != nil {
		return nil, err
	}

	return &updated, nil
}

// ToggleFavorite stores a copy of contact with IsFavorite flipped and returns it
func (cs *ContactService) ToggleFavorite(ctx context.Context, contact models.Contact) (*models.Contact, error) {
	contact.IsFavorite = !contact.IsFavorite

	if err := cs.repo.UpdateContact(ctx, &contact); err != nil {
		return nil, err
	}

	return &contact, nil
}

// ChangePhoto imports photo for the contact with id. When the copy fails the
// stored image is left as it was and the unchanged contact is returned.
func (cs *ContactService) ChangePhoto(ctx context.Context, id int64, photo io.Reader) (*models.Contact, error) {
	current, err := cs.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	path := cs.ImportPhoto(current.Name, photo)
	if path == "" {
		return current, nil
	}

	updated := *current
	updated.Image = path
	if err := cs.repo.UpdateContact(ctx, &updated); err != nil {
		return nil, err
	}

	return &updated, nil
}

// ImportPhoto copies photo into local storage. "" means there is no usable photo.
func (cs *ContactService) ImportPhoto(contactName string, photo io.Reader) string {
	if cs.photos == nil || photo == nil {
		return ""
	}
	return cs.photos.Import(contactName, photo)
}

func (cs *ContactService) DefaultImage() string {
	if cs.photos == nil {
		return ""
	}
	return cs.photos.DefaultImage()
}
