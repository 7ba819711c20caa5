package middlewares

import (
	"context"
	"log"
	"net/http"
	"net/url"

	"github.com/Luismorlan/postmux/utils/flag"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/gin-gonic/gin"
)

// LoginPath is the login entry point anonymous requests are redirected to
// when they hit a gated route.
const LoginPath = "/auth/login/"

// IdentityProvider resolves an access token to an authenticated username.
type IdentityProvider interface {
	ResolveToken(ctx context.Context, token string) (username string, err error)
}

var (
	// identityProvider is a thread safe provider that performs user
	// authorization based on the access token. Before using any middleware,
	// make sure it's initialized correctly via Setup or SetIdentityProvider.
	identityProvider IdentityProvider
)

// Setup initializes the package scoped identity provider. With -no_auth the
// token is resolved as the username directly (development only), otherwise
// tokens are verified against AWS Cognito. This function must be called before
// any middleware is used.
func Setup() {
	if flag.ByPassAuth {
		SetIdentityProvider(&StaticIdentityProvider{})
		return
	}
	provider, err := NewCognitoIdentityProvider()
	if err != nil {
		// Abort directly if Cognito isn't setup successfully, which is crucial
		// for server side authorization.
		log.Fatalf("fail to setup Cognito client: %s", err.Error())
	}
	SetIdentityProvider(provider)
}

func SetIdentityProvider(provider IdentityProvider) {
	identityProvider = provider
}

// CognitoIdentityProvider verifies access tokens against AWS Cognito with aws
// config located in path ~/.aws/config.
type CognitoIdentityProvider struct {
	client *cognitoidentityprovider.Client
}

func NewCognitoIdentityProvider() (*CognitoIdentityProvider, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, err
	}
	return &CognitoIdentityProvider{
		client: cognitoidentityprovider.NewFromConfig(cfg),
	}, nil
}

func (p *CognitoIdentityProvider) ResolveToken(ctx context.Context, token string) (string, error) {
	user, err := p.client.GetUser(ctx, &cognitoidentityprovider.GetUserInput{AccessToken: &token})
	if err != nil {
		return "", err
	}
	return *user.Username, nil
}

// StaticIdentityProvider treats the token itself as the username. Development
// and test only.
type StaticIdentityProvider struct{}

func (p *StaticIdentityProvider) ResolveToken(ctx context.Context, token string) (string, error) {
	return token, nil
}

// Identify fetches the access token from the "token" query parameter or
// header, resolves it, and adds a "sub" header carrying the username for the
// handlers downstream. Requests without a token pass through anonymous, an
// invalid token is rejected outright.
func Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			token = c.Request.Header.Get("token")
		}

		// Anonymous requests stay anonymous, gated routes redirect them via
		// LoginRequired.
		c.Request.Header.Del("sub")
		if token == "" {
			c.Next()
			return
		}

		username, err := identityProvider.ResolveToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"msg": err.Error(),
			})
			c.Abort()
			return
		}

		c.Request.Header.Add("sub", username)
		c.Next()
	}
}

// LoginRequired gates a route on authentication: anonymous requests get a 302
// to the login entry point, preserving the originally intended destination in
// the next parameter.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Header.Get("sub") == "" {
			next := url.QueryEscape(c.Request.URL.Path)
			c.Redirect(http.StatusFound, LoginPath+"?next="+next)
			c.Abort()
			return
		}
		c.Next()
	}
}
