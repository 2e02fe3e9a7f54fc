package httpadapter

import (
	"context"
	"log/slog"

	application "wattline/contexts/identity-access/credential-service/application"
	"wattline/contexts/identity-access/credential-service/application/commands"
	httptransport "wattline/contexts/identity-access/credential-service/transport/http"
)

type Handler struct {
	Register commands.RegisterAccountUseCase
	Update   commands.UpdateCredentialUseCase
	Delete   commands.DeleteCredentialUseCase
	Logger   *slog.Logger
}

func (h Handler) RegisterHandler(ctx context.Context, req httptransport.RegisterRequest) (httptransport.RegisterResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Info("register request received",
		"event", "http_register_received",
		"module", "identity-access/credential-service",
		"layer", "transport",
		"username", req.Username,
	)

	result, err := h.Register.Execute(ctx, commands.RegisterAccountCommand{
		Username:     req.Username,
		Email:        req.Email,
		Role:         req.Role,
		PasswordHash: req.PasswordHash,
	})
	if err != nil {
		return httptransport.RegisterResponse{}, err
	}

	return httptransport.RegisterResponse{
		CredentialID: result.Credential.CredentialID,
		Username:     result.Credential.Username,
		Email:        result.Credential.Email,
	}, nil
}

func (h Handler) UpdateHandler(ctx context.Context, credentialID int64, req httptransport.UpdateCredentialRequest) (httptransport.CredentialResponse, error) {
	credential, err := h.Update.Execute(ctx, commands.UpdateCredentialCommand{
		CredentialID: credentialID,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: req.PasswordHash,
	})
	if err != nil {
		return httptransport.CredentialResponse{}, err
	}
	return httptransport.CredentialResponse{
		CredentialID: credential.CredentialID,
		Username:     credential.Username,
		Email:        credential.Email,
	}, nil
}

func (h Handler) DeleteHandler(ctx context.Context, credentialID int64) error {
	return h.Delete.Execute(ctx, credentialID)
}
