package usecase

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/enemamar/enemamar-api/internal/model"
	"github.com/enemamar/enemamar-api/internal/repository"
	"github.com/enemamar/enemamar-api/shared/sms"
)

// fakeUserRepo is an in-memory UserRepository keyed by canonical phone number.
type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*model.User)}
	for _, user := range users {
		if user.ID.IsZero() {
			user.ID = bson.NewObjectID()
		}
		repo.users[user.PhoneNumber] = user
	}
	return repo
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	user.ID = bson.NewObjectID()
	f.users[user.PhoneNumber] = user
	return user, nil
}

func (f *fakeUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	for _, user := range f.users {
		if user.ID.Hex() == id {
			return user, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) GetUserByPhone(_ context.Context, phoneNumber string) (*model.User, error) {
	user, ok := f.users[phoneNumber]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return user, nil
}

func (f *fakeUserRepo) UpdateUser(
	_ context.Context,
	id string,
	params repository.UpdateUserParams,
) (*model.User, error) {
	for _, user := range f.users {
		if user.ID.Hex() == id {
			if params.PasswordHash != nil {
				user.PasswordHash = *params.PasswordHash
			}
			return user, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) ActivateUser(_ context.Context, phoneNumber string) (*model.User, error) {
	user, ok := f.users[phoneNumber]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	user.Active = true
	return user, nil
}

// fakeOTPProvider accepts a single fixed code and records every challenge.
type fakeOTPProvider struct {
	challenges []string
	code       string
	sendErr    error
}

func (f *fakeOTPProvider) Challenge(_ context.Context, phoneNumber string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.challenges = append(f.challenges, phoneNumber)
	return nil
}

func (f *fakeOTPProvider) Verify(_ context.Context, _, code string) error {
	if code != f.code {
		return sms.ErrCodeInvalid
	}
	return nil
}
