package client

import (
	"encoding/json"
	"net/url"
	"strconv"

	pkgerrors "github.com/pkg/errors"

	"github.com/charlie0129/unitconv/pkg/catalog"
	"github.com/charlie0129/unitconv/pkg/config"
	"github.com/charlie0129/unitconv/pkg/converter"
	"github.com/charlie0129/unitconv/pkg/history"
	"github.com/charlie0129/unitconv/pkg/types"
)

func (c *Client) Convert(req converter.Request) (*types.ConvertResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to marshal conversion request")
	}

	ret, err := c.Post("/convert", string(payload))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to convert")
	}

	var resp types.ConvertResponse
	if err := json.Unmarshal([]byte(ret), &resp); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal conversion response")
	}
	return &resp, nil
}

func (c *Client) GetCategories() ([]string, error) {
	ret, err := c.Get("/categories")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get categories")
	}

	var names []string
	if err := json.Unmarshal([]byte(ret), &names); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal categories")
	}
	return names, nil
}

func (c *Client) GetCategory(name string) (*catalog.Category, error) {
	ret, err := c.Get("/categories/" + url.PathEscape(name))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get category %s", name)
	}

	var category catalog.Category
	if err := json.Unmarshal([]byte(ret), &category); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal category")
	}
	return &category, nil
}

func (c *Client) GetHistory() ([]history.Record, error) {
	ret, err := c.Get("/history")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get history")
	}

	var records []history.Record
	if err := json.Unmarshal([]byte(ret), &records); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal history")
	}
	return records, nil
}

func (c *Client) ClearHistory() (string, error) {
	return c.Delete("/history")
}

func (c *Client) SetPrecision(p int) (string, error) {
	return c.Put("/precision", strconv.Itoa(p))
}

func (c *Client) GetConfig() (*config.RawFileConfig, error) {
	ret, err := c.Get("/config")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get config")
	}

	var conf config.RawFileConfig
	if err := json.Unmarshal([]byte(ret), &conf); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal config")
	}

	return &conf, nil
}

func (c *Client) GetVersion() (string, error) {
	ret, err := c.Get("/version")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get version")
	}

	var v string
	if err := json.Unmarshal([]byte(ret), &v); err != nil {
		return "", pkgerrors.Wrapf(err, "failed to unmarshal version")
	}
	return v, nil
}
