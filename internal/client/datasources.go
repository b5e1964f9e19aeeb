package client

import (
	"context"
	"net/url"

	"github.com/fivetwenty-io/minds/internal/constants"
	"github.com/fivetwenty-io/minds/internal/http"
	"github.com/fivetwenty-io/minds/pkg/minds"
)

// DatasourcesClient implements minds.DatasourcesClient.
type DatasourcesClient struct {
	httpClient *http.Client
}

// NewDatasourcesClient creates a new datasources client.
func NewDatasourcesClient(httpClient *http.Client) *DatasourcesClient {
	return &DatasourcesClient{
		httpClient: httpClient,
	}
}

func datasourcePath(name string) string {
	return constants.DatasourcesPath + "/" + url.PathEscape(name)
}

// Create implements minds.DatasourcesClient.Create.
func (c *DatasourcesClient) Create(ctx context.Context, config *minds.DatasourceConfig, replace bool) (*minds.Datasource, error) {
	datasource := minds.NewDatasource(config)

	err := datasource.Validate()
	if err != nil {
		return nil, err
	}

	if replace {
		err = dropIfExists(ctx, datasource.Name, c.exists, c.Drop)
		if err != nil {
			return nil, err
		}
	}

	_, err = c.httpClient.Post(ctx, constants.DatasourcesPath, config)
	if err != nil {
		return nil, err
	}

	return c.Get(ctx, datasource.Name)
}

func (c *DatasourcesClient) exists(ctx context.Context, name string) error {
	_, err := c.Get(ctx, name)

	return err
}

// List implements minds.DatasourcesClient.List.
func (c *DatasourcesClient) List(ctx context.Context) ([]*minds.Datasource, error) {
	resp, err := c.httpClient.Get(ctx, constants.DatasourcesPath, nil)
	if err != nil {
		return nil, err
	}

	datasources := []*minds.Datasource{}

	if resp.Empty() {
		return datasources, nil
	}

	var list minds.ListResponse[map[string]interface{}]

	err = resp.Decode(&list)
	if err != nil {
		return nil, err
	}

	for _, item := range list.Data {
		if !hasEngine(item) {
			continue
		}

		var datasource minds.Datasource

		err = decodeRecord(item, &datasource)
		if err != nil {
			return nil, err
		}

		datasources = append(datasources, &datasource)
	}

	return datasources, nil
}

// Get implements minds.DatasourcesClient.Get.
func (c *DatasourcesClient) Get(ctx context.Context, name string) (*minds.Datasource, error) {
	resp, err := c.httpClient.Get(ctx, datasourcePath(name), nil)
	if err != nil {
		return nil, err
	}

	var item map[string]interface{}

	if !resp.Empty() {
		err = resp.Decode(&item)
		if err != nil {
			return nil, err
		}
	}

	if !hasEngine(item) {
		return nil, minds.NewError(minds.KindUnsupported, "unsupported datasource type: "+name)
	}

	var datasource minds.Datasource

	err = decodeRecord(item, &datasource)
	if err != nil {
		return nil, err
	}

	return &datasource, nil
}

// Drop implements minds.DatasourcesClient.Drop.
func (c *DatasourcesClient) Drop(ctx context.Context, name string) error {
	_, err := c.httpClient.Delete(ctx, datasourcePath(name))

	return err
}
