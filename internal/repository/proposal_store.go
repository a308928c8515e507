package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pgdesk/room-service/internal/domain"
	customError "github.com/pgdesk/room-service/pkg/errors"
)

const proposalKeyPrefix = "payment:proposal:"

// redisProposalStore keeps pending overpayment proposals in Redis so they
// expire on their own if the operator never confirms or cancels.
type redisProposalStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProposalStore(client *redis.Client, ttl time.Duration) ProposalStore {
	return &redisProposalStore{client: client, ttl: ttl}
}

func (s *redisProposalStore) Save(ctx context.Context, proposal *domain.PaymentProposal) error {
	payload, err := json.Marshal(proposal)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, proposalKeyPrefix+proposal.Token.String(), payload, s.ttl).Err()
}

func (s *redisProposalStore) Get(ctx context.Context, token uuid.UUID) (*domain.PaymentProposal, error) {
	payload, err := s.client.Get(ctx, proposalKeyPrefix+token.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, customError.ErrProposalNotFound
	}
	if err != nil {
		return nil, err
	}

	var proposal domain.PaymentProposal
	if err := json.Unmarshal(payload, &proposal); err != nil {
		return nil, err
	}

	return &proposal, nil
}

func (s *redisProposalStore) Delete(ctx context.Context, token uuid.UUID) error {
	return s.client.Del(ctx, proposalKeyPrefix+token.String()).Err()
}
