package client

import (
	"context"
	"fmt"
	"maps"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/fivetwenty-io/minds/internal/constants"
	"github.com/fivetwenty-io/minds/internal/http"
	"github.com/fivetwenty-io/minds/pkg/minds"
)

// promptTemplateParameter is the parameters key the prompt template is sent under.
const promptTemplateParameter = "prompt_template"

// MindsClient implements minds.MindsClient.
type MindsClient struct {
	httpClient *http.Client
	project    string
}

// NewMindsClient creates a new minds client scoped to project.
func NewMindsClient(httpClient *http.Client, project string) *MindsClient {
	if project == "" {
		project = constants.DefaultProject
	}

	return &MindsClient{
		httpClient: httpClient,
		project:    project,
	}
}

// mindCreateRequest is the body of a create call.
type mindCreateRequest struct {
	Name        string                 `json:"name"`
	ModelName   string                 `json:"model_name"`
	Provider    string                 `json:"provider,omitempty"`
	Parameters  map[string]interface{} `json:"parameters"`
	Datasources []string               `json:"datasources,omitempty"`
}

func (c *MindsClient) collectionPath() string {
	return constants.ProjectsPath + "/" + url.PathEscape(c.project) + "/" + constants.MindsSegment
}

func (c *MindsClient) itemPath(name string) string {
	return c.collectionPath() + "/" + url.PathEscape(name)
}

// Create implements minds.MindsClient.Create.
func (c *MindsClient) Create(ctx context.Context, name string, config *minds.MindConfig, replace bool) (*minds.Mind, error) {
	if config == nil {
		config = &minds.MindConfig{}
	}

	err := validateMindCreate(name, config)
	if err != nil {
		return nil, err
	}

	if replace {
		err = dropIfExists(ctx, name, c.exists, c.Drop)
		if err != nil {
			return nil, err
		}
	}

	_, err = c.httpClient.Post(ctx, c.collectionPath(), newMindCreateRequest(name, config))
	if err != nil {
		return nil, err
	}

	return c.Get(ctx, name)
}

func validateMindCreate(name string, config *minds.MindConfig) error {
	err := validation.Validate(name, validation.Required.Error("name is required"))
	if err != nil {
		return fmt.Errorf("%w: %w", minds.ErrValidation, err)
	}

	err = validation.Validate(config.ModelName, validation.Required.Error("model name is required"))
	if err != nil {
		return fmt.Errorf("%w: %w", minds.ErrValidation, err)
	}

	return nil
}

func newMindCreateRequest(name string, config *minds.MindConfig) *mindCreateRequest {
	parameters := maps.Clone(config.Parameters)
	if parameters == nil {
		parameters = map[string]interface{}{}
	}

	if config.PromptTemplate != "" {
		parameters[promptTemplateParameter] = config.PromptTemplate
	}

	return &mindCreateRequest{
		Name:        name,
		ModelName:   config.ModelName,
		Provider:    config.Provider,
		Parameters:  parameters,
		Datasources: config.Datasources,
	}
}

func (c *MindsClient) exists(ctx context.Context, name string) error {
	_, err := c.Get(ctx, name)

	return err
}

// List implements minds.MindsClient.List.
func (c *MindsClient) List(ctx context.Context) ([]*minds.Mind, error) {
	resp, err := c.httpClient.Get(ctx, c.collectionPath(), nil)
	if err != nil {
		return nil, err
	}

	result := []*minds.Mind{}

	if resp.Empty() {
		return result, nil
	}

	var list minds.ListResponse[map[string]interface{}]

	err = resp.Decode(&list)
	if err != nil {
		return nil, err
	}

	for _, item := range list.Data {
		var mind minds.Mind

		err = decodeRecord(item, &mind)
		if err != nil {
			return nil, err
		}

		result = append(result, &mind)
	}

	return result, nil
}

// Get implements minds.MindsClient.Get.
func (c *MindsClient) Get(ctx context.Context, name string) (*minds.Mind, error) {
	resp, err := c.httpClient.Get(ctx, c.itemPath(name), nil)
	if err != nil {
		return nil, err
	}

	var item map[string]interface{}

	err = resp.Decode(&item)
	if err != nil {
		return nil, err
	}

	var mind minds.Mind

	err = decodeRecord(item, &mind)
	if err != nil {
		return nil, err
	}

	return &mind, nil
}

// Drop implements minds.MindsClient.Drop.
func (c *MindsClient) Drop(ctx context.Context, name string) error {
	_, err := c.httpClient.Delete(ctx, c.itemPath(name))

	return err
}
