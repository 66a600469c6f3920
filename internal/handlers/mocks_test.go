package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/SuryaKTiwari11/Lost-FoundPortal-sub002/internal/models"
	"github.com/SuryaKTiwari11/Lost-FoundPortal-sub002/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory fakes backing the handler tests. They cover only the behavior the
// handlers exercise; anything else returns zero values.

type fakeItemRepo struct {
	lostItems  map[string]*models.LostItem
	foundItems map[string]*models.FoundItem

	statusUpdates    []models.StatusUpdate
	verificationSets map[string]models.VerificationStep
	claimedCalls     []uint
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{
		lostItems:        map[string]*models.LostItem{},
		foundItems:       map[string]*models.FoundItem{},
		verificationSets: map[string]models.VerificationStep{},
	}
}

func (f *fakeItemRepo) CreateLostItem(ctx context.Context, item *models.LostItem) error {
	item.ID = primitive.NewObjectID()
	item.CreatedAt = time.Now()
	f.lostItems[item.ID.Hex()] = item
	return nil
}

func (f *fakeItemRepo) CreateFoundItem(ctx context.Context, item *models.FoundItem) error {
	item.ID = primitive.NewObjectID()
	item.CreatedAt = time.Now()
	f.foundItems[item.ID.Hex()] = item
	return nil
}

func (f *fakeItemRepo) GetLostItemByID(ctx context.Context, id string) (*models.LostItem, error) {
	item, ok := f.lostItems[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return item, nil
}

func (f *fakeItemRepo) GetFoundItemByID(ctx context.Context, id string) (*models.FoundItem, error) {
	item, ok := f.foundItems[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return item, nil
}

func (f *fakeItemRepo) SearchItems(ctx context.Context, filter repositories.ItemSearchFilter) (*repositories.SearchResult, error) {
	return &repositories.SearchResult{Items: []repositories.ItemListing{}}, nil
}

func (f *fakeItemRepo) ListFoundItems(ctx context.Context, filter repositories.ItemSearchFilter) ([]models.FoundItem, int64, error) {
	return nil, 0, nil
}

func (f *fakeItemRepo) UpdateFoundItemStatus(ctx context.Context, id string, update models.StatusUpdate) (*models.FoundItem, error) {
	item, ok := f.foundItems[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	f.statusUpdates = append(f.statusUpdates, update)
	item.Status = update.Status
	if update.IsVerified != nil {
		item.IsVerified = *update.IsVerified
	}
	return item, nil
}

func (f *fakeItemRepo) MarkFoundItemClaimed(ctx context.Context, id string, claimantID uint) error {
	item, ok := f.foundItems[id]
	if !ok {
		return repositories.ErrNotFound
	}
	f.claimedCalls = append(f.claimedCalls, claimantID)
	item.Status = models.FoundStatusClaimed
	item.ClaimedBy = claimantID
	return nil
}

func (f *fakeItemRepo) SetVerificationStep(ctx context.Context, id, stepField string, step models.VerificationStep) error {
	if _, ok := f.foundItems[id]; !ok {
		return repositories.ErrNotFound
	}
	f.verificationSets[stepField] = step
	return nil
}

func (f *fakeItemRepo) GetVerification(ctx context.Context, id string) (*models.FoundItem, error) {
	return f.GetFoundItemByID(ctx, id)
}

func (f *fakeItemRepo) ListOwnedItemIDs(ctx context.Context, userID uint) ([]primitive.ObjectID, []primitive.ObjectID, error) {
	var lost, found []primitive.ObjectID
	for _, item := range f.lostItems {
		if item.ReportedBy == userID {
			lost = append(lost, item.ID)
		}
	}
	for _, item := range f.foundItems {
		if item.ReportedBy == userID {
			found = append(found, item.ID)
		}
	}
	return lost, found, nil
}

func (f *fakeItemRepo) GetStatistics(ctx context.Context) (*repositories.ItemStatistics, error) {
	return &repositories.ItemStatistics{}, nil
}

func (f *fakeItemRepo) CountCreatedSince(ctx context.Context, kind string, since time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeItemRepo) CountByCategorySince(ctx context.Context, category string, since time.Time) (int64, error) {
	return 0, nil
}

type fakeClaimRepo struct {
	claims map[string]*models.ClaimRequest
}

func newFakeClaimRepo() *fakeClaimRepo {
	return &fakeClaimRepo{claims: map[string]*models.ClaimRequest{}}
}

func (f *fakeClaimRepo) CreateClaim(ctx context.Context, claim *models.ClaimRequest) error {
	claim.ID = primitive.NewObjectID()
	claim.Status = models.ClaimStatusPending
	claim.CreatedAt = time.Now()
	f.claims[claim.ID.Hex()] = claim
	return nil
}

func (f *fakeClaimRepo) GetClaimByID(ctx context.Context, id string) (*models.ClaimRequest, error) {
	claim, ok := f.claims[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return claim, nil
}

func (f *fakeClaimRepo) HasActiveClaim(ctx context.Context, foundItemID primitive.ObjectID, claimantID uint) (bool, error) {
	for _, claim := range f.claims {
		if claim.FoundItemID == foundItemID && claim.ClaimantID == claimantID &&
			(claim.Status == models.ClaimStatusPending || claim.Status == models.ClaimStatusApproved) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeClaimRepo) ProcessClaim(ctx context.Context, id, status string, adminID uint, adminNotes string) (*models.ClaimRequest, error) {
	claim, ok := f.claims[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if claim.Status != models.ClaimStatusPending {
		return nil, repositories.ErrConflict
	}
	now := time.Now()
	claim.Status = status
	claim.ProcessedBy = adminID
	claim.ProcessedAt = &now
	claim.AdminNotes = adminNotes
	return claim, nil
}

func (f *fakeClaimRepo) CancelClaim(ctx context.Context, id string, reason string) (*models.ClaimRequest, error) {
	claim, ok := f.claims[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if claim.Status != models.ClaimStatusPending {
		return nil, repositories.ErrConflict
	}
	claim.Status = models.ClaimStatusCanceled
	claim.CancellationReason = reason
	return claim, nil
}

func (f *fakeClaimRepo) ListClaims(ctx context.Context, status string, page, limit int) ([]models.ClaimRequest, int64, error) {
	var out []models.ClaimRequest
	for _, claim := range f.claims {
		if status == "" || claim.Status == status {
			out = append(out, *claim)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeClaimRepo) ListClaimsByClaimant(ctx context.Context, claimantID uint) ([]models.ClaimRequest, error) {
	var out []models.ClaimRequest
	for _, claim := range f.claims {
		if claim.ClaimantID == claimantID {
			out = append(out, *claim)
		}
	}
	return out, nil
}

func (f *fakeClaimRepo) CountClaimsByStatus(ctx context.Context, status string) (int64, error) {
	return 0, nil
}

func (f *fakeClaimRepo) CountClaimsSince(ctx context.Context, since time.Time) (int64, error) {
	return 0, nil
}

type fakeMatchRepo struct {
	matches map[string]*models.ItemMatch
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: map[string]*models.ItemMatch{}}
}

func (f *fakeMatchRepo) seed(lostID, foundID primitive.ObjectID, adminID uint) *models.ItemMatch {
	match := &models.ItemMatch{
		ID:          primitive.NewObjectID(),
		LostItemID:  lostID,
		FoundItemID: foundID,
		MatchedBy:   adminID,
		MatchType:   models.MatchTypeManual,
		Status:      models.MatchStatusPending,
		CreatedAt:   time.Now(),
	}
	f.matches[match.ID.Hex()] = match
	return match
}

func (f *fakeMatchRepo) CreateMatch(ctx context.Context, match *models.ItemMatch) error {
	match.ID = primitive.NewObjectID()
	match.Status = models.MatchStatusPending
	match.CreatedAt = time.Now()
	f.matches[match.ID.Hex()] = match
	return nil
}

func (f *fakeMatchRepo) GetMatchByID(ctx context.Context, id string) (*models.ItemMatch, error) {
	match, ok := f.matches[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return match, nil
}

func (f *fakeMatchRepo) ConfirmMatch(ctx context.Context, id string, status string, adminID uint) (*models.ItemMatch, error) {
	match, ok := f.matches[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if match.Status != models.MatchStatusPending {
		return nil, repositories.ErrConflict
	}
	now := time.Now()
	match.Status = status
	match.ConfirmedBy = adminID
	match.ConfirmedAt = &now
	match.UpdatedAt = now
	return match, nil
}

func (f *fakeMatchRepo) ListMatchesByItemIDs(ctx context.Context, lostIDs, foundIDs []primitive.ObjectID) ([]models.ItemMatch, error) {
	wanted := map[string]bool{}
	for _, id := range lostIDs {
		wanted["l"+id.Hex()] = true
	}
	for _, id := range foundIDs {
		wanted["f"+id.Hex()] = true
	}
	var out []models.ItemMatch
	for _, match := range f.matches {
		if wanted["l"+match.LostItemID.Hex()] || wanted["f"+match.FoundItemID.Hex()] {
			out = append(out, *match)
		}
	}
	return out, nil
}

func (f *fakeMatchRepo) CountMatchesByStatus(ctx context.Context, status string) (int64, error) {
	return 0, nil
}

func (f *fakeMatchRepo) CountMatchesSince(ctx context.Context, since time.Time) (int64, error) {
	return 0, nil
}

type fakeUserRepo struct {
	users map[uint]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[uint]*models.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (f *fakeUserRepo) CreateUser(user *models.User) error {
	user.ID = uint(len(f.users) + 1)
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	for _, user := range f.users {
		if user.FirebaseUID == firebaseUID {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) UpdateUser(user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) CountUsers() (int64, error) { return int64(len(f.users)), nil }

func (f *fakeUserRepo) CountUsersSince(since time.Time) (int64, error) { return 0, nil }

type fakeCommRepo struct {
	created []*models.CommunicationHistory
}

func (f *fakeCommRepo) CreateCommunication(ctx context.Context, comm *models.CommunicationHistory) error {
	comm.ID = primitive.NewObjectID()
	f.created = append(f.created, comm)
	return nil
}

func (f *fakeCommRepo) ListByRecipient(ctx context.Context, recipientID uint, page, limit int) ([]models.CommunicationHistory, int64, error) {
	var out []models.CommunicationHistory
	for _, comm := range f.created {
		if comm.RecipientID == recipientID {
			out = append(out, *comm)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeCommRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	return int64(len(f.created)), nil
}

type fakeMailer struct {
	sent []string
	fail bool
}

func (f *fakeMailer) Send(to, subject, body string) error {
	if f.fail {
		return errors.New("delivery failed")
	}
	f.sent = append(f.sent, to)
	return nil
}
