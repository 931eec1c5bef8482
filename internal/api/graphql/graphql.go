package graphql

import (
	"bytes"
	"context"
	"net/http"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/transport"
	"github.com/gin-gonic/gin"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"go.uber.org/zap"

	"github.com/ispcore/ipam/internal/adapter"
	"github.com/ispcore/ipam/internal/api/middleware"
	"github.com/ispcore/ipam/internal/ipam"
	"github.com/ispcore/ipam/internal/logger"
	"github.com/ispcore/ipam/internal/migration"
)

// authenticatedFields are Query fields that need credentials even though they are reads
var authenticatedFields = map[string]bool{
	"validate_migration": true,
}

// Handler defines the interface for GraphQL API handlers
type Handler interface {
	// HandleGraphQL handles GraphQL queries
	HandleGraphQL(c *gin.Context)

	// HandleSchema serves the schema as SDL
	HandleSchema(c *gin.Context)
}

// gqlHandler implements the Handler interface using gqlgen
type gqlHandler struct {
	server *handler.Server
	auth   *middleware.Authenticator
	sdl    []byte
}

// NewHandler creates a new GraphQL handler with gqlgen
func NewHandler(engine ipam.Engine, orchestrator migration.Orchestrator, auth *middleware.Authenticator) Handler {
	schema := NewExecutableSchema(NewResolver(engine, orchestrator), adapter.NewJSON())

	// introspection stays off; clients fetch the SDL instead
	srv := handler.New(schema)
	srv.AddTransport(transport.GET{})
	srv.AddTransport(transport.POST{})
	srv.SetErrorPresenter(ErrorPresenter)
	srv.SetRecoverFunc(RecoverFunc)

	var sdl bytes.Buffer
	formatter.NewFormatter(&sdl).FormatSchema(schema.Schema())

	h := &gqlHandler{
		server: srv,
		auth:   auth,
		sdl:    sdl.Bytes(),
	}
	srv.AroundOperations(h.authMiddleware)

	return h
}

// authMiddleware authenticates operations that select a field listed in authenticatedFields
func (h *gqlHandler) authMiddleware(ctx context.Context, next graphql.OperationHandler) graphql.ResponseHandler {
	opctx := graphql.GetOperationContext(ctx)
	if opctx.Operation == nil || opctx.Operation.Operation != ast.Query {
		return next(ctx)
	}

	fieldName := ""
	for _, field := range graphql.CollectFields(opctx, opctx.Operation.SelectionSet, []string{parsedSchema.Query.Name}) {
		if authenticatedFields[field.Name] {
			fieldName = field.Name
			break
		}
	}
	if fieldName == "" {
		return next(ctx)
	}

	authHeader := ""
	if opctx.Headers != nil {
		authHeader = opctx.Headers.Get("Authorization")
	}

	result := h.auth.Authenticate(authHeader)
	if !result.Success {
		logger.WarnCtx(ctx, "GraphQL authentication failed",
			zap.Error(result.Error),
			zap.String("field", fieldName),
		)
		return func(ctx context.Context) *graphql.Response {
			return graphql.ErrorResponse(ctx, "Authentication required for %s", fieldName)
		}
	}

	ctx = context.WithValue(ctx, middleware.AUTH_TYPE_KEY, result.AuthType)
	if result.Claims != nil {
		ctx = context.WithValue(ctx, middleware.JWT_CLAIMS_KEY, result.Claims)
	}
	if result.AuthSubject != "" {
		ctx = context.WithValue(ctx, middleware.AUTH_SUBJECT_KEY, result.AuthSubject)
	}

	logger.DebugCtx(ctx, "GraphQL authentication successful",
		zap.String("field", fieldName),
		zap.String("auth_type", result.AuthType),
	)

	return next(ctx)
}

// HandleGraphQL processes GraphQL queries
func (h *gqlHandler) HandleGraphQL(c *gin.Context) {
	h.server.ServeHTTP(c.Writer, c.Request)
}

// HandleSchema writes the SDL of the served schema
func (h *gqlHandler) HandleSchema(c *gin.Context) {
	c.Data(http.StatusOK, "text/plain; charset=utf-8", h.sdl)
}

// SetupRoutes registers the GraphQL endpoint next to the REST routes
func SetupRoutes(router *gin.Engine, h Handler) {
	router.POST("/graphql", h.HandleGraphQL)
	router.GET("/graphql", h.HandleGraphQL)
	router.GET("/graphql/schema", h.HandleSchema)
}
