package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/pizza-nz/ordering-service/internal/db/repository"
	"github.com/pizza-nz/ordering-service/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Actor kinds carried in token claims
const (
	ActorTypeStaff  = "staff"
	ActorTypeClient = "client"
)

// JWTConfig holds configuration for JWT token generation
type JWTConfig struct {
	Secret    string
	ExpiresIn int // hours
}

// AuthService handles authentication for both staff members and clients
type AuthService struct {
	repos     *repository.Repositories
	jwtConfig JWTConfig
}

// NewAuthService creates a new authentication service
func NewAuthService(repos *repository.Repositories, jwtConfig JWTConfig) *AuthService {
	return &AuthService{
		repos:     repos,
		jwtConfig: jwtConfig,
	}
}

// Claims represents JWT claims. Subject is the actor's ID; the remaining
// fields identify the actor kind and its business scope so requests need no
// extra lookup.
type Claims struct {
	ActorType  string `json:"actor_type"`
	Role       string `json:"role,omitempty"`
	ParentID   string `json:"parent_id,omitempty"`
	BusinessID string `json:"business_id,omitempty"`
	jwt.RegisteredClaims
}

// Actor reconstructs the actor encoded in the claims.
func (c *Claims) Actor() (models.Actor, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return nil, fmt.Errorf("invalid actor ID in token: %w", err)
	}

	switch c.ActorType {
	case ActorTypeStaff:
		role := models.UserRole(c.Role)
		if !role.Valid() {
			return nil, fmt.Errorf("invalid role in token: %q", c.Role)
		}
		actor := models.StaffActor{ID: id, Role: role}
		if c.ParentID != "" {
			parentID, err := uuid.Parse(c.ParentID)
			if err != nil {
				return nil, fmt.Errorf("invalid parent ID in token: %w", err)
			}
			actor.ParentID = &parentID
		}
		return actor, nil
	case ActorTypeClient:
		businessID, err := uuid.Parse(c.BusinessID)
		if err != nil {
			return nil, fmt.Errorf("invalid business ID in token: %w", err)
		}
		return models.ClientActor{ID: id, UserID: businessID}, nil
	}

	return nil, fmt.Errorf("unknown actor type: %q", c.ActorType)
}

// LoginStaff authenticates a staff member and returns a JWT token
func (s *AuthService) LoginStaff(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.repos.User.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("invalid credentials")
	}

	if !user.IsActive {
		return "", nil, fmt.Errorf("user account is inactive")
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return "", nil, fmt.Errorf("invalid credentials")
	}

	claims := s.newClaims(user.ID, ActorTypeStaff)
	claims.Role = string(user.Role)
	if user.ParentID != nil {
		claims.ParentID = user.ParentID.String()
	}

	token, err := s.signToken(claims)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return token, user, nil
}

// LoginClient authenticates a client and returns a JWT token
func (s *AuthService) LoginClient(ctx context.Context, email, password string) (string, *models.Client, error) {
	client, err := s.repos.Client.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("invalid credentials")
	}

	if !client.IsActive {
		return "", nil, fmt.Errorf("client account is inactive")
	}

	err = bcrypt.CompareHashAndPassword([]byte(client.PasswordHash), []byte(password))
	if err != nil {
		return "", nil, fmt.Errorf("invalid credentials")
	}

	if err := s.repos.Client.TouchLastLogin(ctx, client.ID); err != nil {
		// Login bookkeeping must not block token issuance
		log.Printf("Failed to record client login: %v", err)
	}

	claims := s.newClaims(client.ID, ActorTypeClient)
	claims.BusinessID = client.UserID.String()

	token, err := s.signToken(claims)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return token, client, nil
}

// newClaims builds the registered claim set for an actor
func (s *AuthService) newClaims(actorID uuid.UUID, actorType string) *Claims {
	expirationTime := time.Now().Add(time.Duration(s.jwtConfig.ExpiresIn) * time.Hour)

	return &Claims{
		ActorType: actorType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actorID.String(),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
}

// signToken signs the claims with the configured secret
func (s *AuthService) signToken(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token and returns the claims
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// RegisterStaff registers a new staff member under a business
func (s *AuthService) RegisterStaff(ctx context.Context, businessID uuid.UUID, req models.UserRequest) (*models.User, error) {
	if !req.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", models.ErrInvalidRequest, req.Role)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ParentID:     &businessID,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Name:         req.Name,
		Role:         req.Role,
		IsActive:     req.IsActive,
	}

	createdUser, err := s.repos.User.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return createdUser, nil
}

// ListStaff lists the staff of a business, the owner account included
func (s *AuthService) ListStaff(ctx context.Context, businessID uuid.UUID) ([]models.User, error) {
	return s.repos.User.ListByBusiness(ctx, businessID)
}

// GetStaff gets a staff member by ID
func (s *AuthService) GetStaff(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.repos.User.GetByID(ctx, id)
}

// GetClient gets a client by ID
func (s *AuthService) GetClient(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	return s.repos.Client.GetByID(ctx, id)
}

// RegisterClient registers a new client under a business
func (s *AuthService) RegisterClient(ctx context.Context, req models.ClientRequest) (*models.Client, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	client := models.Client{
		UserID:       req.UserID,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsActive:     true,
	}

	createdClient, err := s.repos.Client.Create(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return createdClient, nil
}
