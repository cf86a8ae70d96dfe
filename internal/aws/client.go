package aws

import (
	"context"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Client wraps the AWS SDK behind the operations the browser needs. It holds
// a single base config; service clients are built per call with the requested
// region so every operation is region-scoped without reloading credentials.
type Client struct {
	cfg sdkaws.Config
}

// NewClient creates a client from the default credential chain
// (environment variables, shared config, instance role).
func NewClient(ctx context.Context) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &Client{cfg: cfg}, nil
}

// NewClientWithProfile creates a client bound to a shared-config profile.
func NewClientWithProfile(ctx context.Context, profile string) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithSharedConfigProfile(profile),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for profile %q: %w", profile, err)
	}
	return &Client{cfg: cfg}, nil
}

// NewClientWithStaticCredentials creates a client from an explicit key pair,
// bypassing the shared-config chain.
func NewClientWithStaticCredentials(ctx context.Context, accessKeyID, secretAccessKey, sessionToken string) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, sessionToken),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &Client{cfg: cfg}, nil
}

func (c *Client) ecsClient(region string) *ecs.Client {
	return ecs.NewFromConfig(c.cfg, func(o *ecs.Options) { o.Region = region })
}

func (c *Client) ec2Client(region string) *ec2.Client {
	return ec2.NewFromConfig(c.cfg, func(o *ec2.Options) { o.Region = region })
}

func (c *Client) rdsClient(region string) *rds.Client {
	return rds.NewFromConfig(c.cfg, func(o *rds.Options) { o.Region = region })
}

func (c *Client) ssmClient(region string) *ssm.Client {
	return ssm.NewFromConfig(c.cfg, func(o *ssm.Options) { o.Region = region })
}

func (c *Client) stsClient(region string) *sts.Client {
	return sts.NewFromConfig(c.cfg, func(o *sts.Options) { o.Region = region })
}

func (c *Client) cloudwatchClient(region string) *cloudwatch.Client {
	return cloudwatch.NewFromConfig(c.cfg, func(o *cloudwatch.Options) { o.Region = region })
}

func (c *Client) logsClient(region string) *cloudwatchlogs.Client {
	return cloudwatchlogs.NewFromConfig(c.cfg, func(o *cloudwatchlogs.Options) { o.Region = region })
}

// DefaultRegion returns the region from the loaded config, if any.
func (c *Client) DefaultRegion() string {
	return c.cfg.Region
}

// CallerIdentity returns the account ID and principal ARN for the loaded
// credentials. Used for the header line only.
func (c *Client) CallerIdentity(ctx context.Context, region string) (account, arn string, err error) {
	out, err := c.stsClient(region).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", "", fmt.Errorf("failed to get caller identity: %w", err)
	}
	return getString(out.Account), getString(out.Arn), nil
}

// getString safely dereferences a string pointer.
func getString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func getInt32Value(v *int32) int32 {
	if v == nil {
		return 0
	}
	return *v
}
