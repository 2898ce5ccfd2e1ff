// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package database

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/tomtom215/steampulse/internal/database/query"
)

// BigQueryRunner runs queries as BigQuery jobs with named parameters.
type BigQueryRunner struct {
	client   *bigquery.Client
	location string
}

// NewBigQueryRunner creates a client billed to projectID. location may be
// empty to let BigQuery pick the dataset's location.
func NewBigQueryRunner(ctx context.Context, projectID, location string, opts ...option.ClientOption) (*BigQueryRunner, error) {
	client, err := bigquery.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create bigquery client: %w", err)
	}
	return &BigQueryRunner{client: client, location: location}, nil
}

// Run implements Runner.
func (r *BigQueryRunner) Run(ctx context.Context, spec query.Spec) ([]Row, error) {
	q := r.client.Query(spec.Text)
	q.Location = r.location
	for _, p := range spec.Params {
		q.Parameters = append(q.Parameters, bigquery.QueryParameter{Name: p.Name, Value: p.Value})
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, err
	}

	rows := []Row{}
	for {
		var values map[string]bigquery.Value
		err := it.Next(&values)
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(Row, len(values))
		for k, v := range values {
			row[k] = fromBigQuery(v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// fromBigQuery unwraps REPEATED values so decode sees plain []any.
func fromBigQuery(v bigquery.Value) any {
	list, ok := v.([]bigquery.Value)
	if !ok {
		return v
	}
	out := make([]any, len(list))
	for i, item := range list {
		out[i] = fromBigQuery(item)
	}
	return out
}

// Close implements Runner.
func (r *BigQueryRunner) Close() error {
	return r.client.Close()
}
