package controller

import (
	"context"
	"net/http/httptest"
	"testing"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type historyServiceStub struct {
	gotUser  string
	gotSince int64
}

func (s *historyServiceStub) CreateChat(ctx context.Context, userId string, req *dto.CreateChatRequest) (*dto.CreateChatResponse, error) {
	return &dto.CreateChatResponse{}, nil
}

func (s *historyServiceStub) RenameChat(ctx context.Context, userId, chatId string, req *dto.RenameChatRequest) error {
	return nil
}

func (s *historyServiceStub) DeleteChat(ctx context.Context, userId, chatId string) error {
	return nil
}

func (s *historyServiceStub) GetChats(ctx context.Context, userId string, sinceMs int64) ([]*dto.ChatPayload, error) {
	s.gotUser = userId
	s.gotSince = sinceMs
	return nil, nil
}

func (s *historyServiceStub) AddMessages(ctx context.Context, userId, chatId string, req *dto.AddMessagesRequest) error {
	return nil
}

func (s *historyServiceStub) GetMessages(ctx context.Context, userId, chatId string) ([]*dto.MessagePayload, error) {
	return nil, nil
}

func bearerToken(t *testing.T, secret, userId string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": userId}).
		SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestGetChats_SinceCarriesFullEpochMsRange(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	stub := &historyServiceStub{}
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewChatController(nil, stub).RegisterRoutes(app.Group("/api"))

	// A current epoch-ms value; it does not fit in 32 bits.
	req := httptest.NewRequest(fiber.MethodGet, "/api/chat/v1?since=1757000000000", nil)
	req.Header.Set("Authorization", "Bearer "+bearerToken(t, "test-secret", "u1"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "u1", stub.gotUser)
	assert.Equal(t, int64(1757000000000), stub.gotSince)
}

func TestGetChats_RejectsNonNumericSince(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	stub := &historyServiceStub{}
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewChatController(nil, stub).RegisterRoutes(app.Group("/api"))

	req := httptest.NewRequest(fiber.MethodGet, "/api/chat/v1?since=yesterday", nil)
	req.Header.Set("Authorization", "Bearer "+bearerToken(t, "test-secret", "u1"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
