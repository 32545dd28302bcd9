package services

import (
	"context"

	"github.com/tetoca/tetoca-go/internal/data"
	"github.com/tetoca/tetoca-go/internal/models"
)

type Enterprises struct {
	source data.Source
}

func NewEnterprises(source data.Source) *Enterprises {
	return &Enterprises{source: source}
}

func (e *Enterprises) List(ctx context.Context) ([]models.Enterprise, error) {
	return e.source.ListEnterprises(ctx)
}

func (e *Enterprises) Get(ctx context.Context, enterpriseID string) (models.Enterprise, error) {
	return e.source.GetEnterprise(ctx, enterpriseID)
}

func (e *Enterprises) Search(ctx context.Context, query string) ([]models.Enterprise, error) {
	return e.source.SearchEnterprises(ctx, query)
}

func (e *Enterprises) ByCategory(ctx context.Context, categoryID string) ([]models.Enterprise, error) {
	return e.source.EnterprisesByCategory(ctx, categoryID)
}

type Categories struct {
	source data.Source
}

func NewCategories(source data.Source) *Categories {
	return &Categories{source: source}
}

func (c *Categories) List(ctx context.Context) ([]models.Category, error) {
	return c.source.ListCategories(ctx)
}

type Queues struct {
	source data.Source
}

func NewQueues(source data.Source) *Queues {
	return &Queues{source: source}
}

func (q *Queues) ByEnterprise(ctx context.Context, enterpriseID string) ([]models.Queue, error) {
	return q.source.QueuesByEnterprise(ctx, enterpriseID)
}

func (q *Queues) Get(ctx context.Context, queueID string) (models.Queue, error) {
	return q.source.GetQueue(ctx, queueID)
}
