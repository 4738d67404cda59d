package app

import (
	"fmt"

	platformService "github.com/allisson/replydesk/internal/platform/service"
)

// CredentialCache returns the OAuth credential cache for the review platform.
func (c *Container) CredentialCache() (platformService.CredentialCache, error) {
	var err error
	c.credentialCacheInit.Do(func() {
		c.credentialCache, err = c.initCredentialCache()
		if err != nil {
			c.initErrors["credentialCache"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["credentialCache"]; exists {
		return nil, storedErr
	}
	return c.credentialCache, nil
}

// ReviewClient returns the review platform client.
func (c *Container) ReviewClient() (platformService.ReviewClient, error) {
	var err error
	c.reviewClientInit.Do(func() {
		c.reviewClient, err = c.initReviewClient()
		if err != nil {
			c.initErrors["reviewClient"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["reviewClient"]; exists {
		return nil, storedErr
	}
	return c.reviewClient, nil
}

// initCredentialCache creates the credential cache from the OAuth configuration.
func (c *Container) initCredentialCache() (platformService.CredentialCache, error) {
	clientSecret, err := c.resolveSecret("OAUTH_CLIENT_SECRET", c.config.OAuthClientSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve oauth client secret: %w", err)
	}

	refreshToken, err := c.resolveSecret("OAUTH_REFRESH_TOKEN", c.config.OAuthRefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve oauth refresh token: %w", err)
	}

	oauthConfig := platformService.OAuthConfig{
		ClientID:     c.config.OAuthClientID,
		ClientSecret: clientSecret,
		RefreshToken: refreshToken,
		TokenURL:     c.config.OAuthTokenURL,
		Timeout:      c.config.OAuthRefreshTimeout,
	}

	return platformService.NewCredentialCache(oauthConfig, c.Logger()), nil
}

// initReviewClient creates the review platform client with all its dependencies.
func (c *Container) initReviewClient() (platformService.ReviewClient, error) {
	credentialCache, err := c.CredentialCache()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential cache for review client: %w", err)
	}

	clientConfig := platformService.ReviewClientConfig{
		BaseURL:      c.config.PlatformBaseURL,
		FetchTimeout: c.config.ReviewFetchTimeout,
		WriteTimeout: c.config.ReplyWriteTimeout,
		RateLimitRPS: c.config.PlatformRateLimit,
		RateBurst:    c.config.PlatformRateBurst,
	}

	return platformService.NewReviewClient(clientConfig, credentialCache, c.Logger()), nil
}
