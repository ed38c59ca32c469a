package db

import (
	"context"

	"github.com/eventboard/backend/internal/model"
)

func (db *MySQL) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := db.DB.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (db *MySQL) GetCategoryByID(ctx context.Context, id string) (*model.Category, error) {
	var c model.Category
	err := db.DB.QueryRowContext(ctx, `SELECT id, name FROM categories WHERE id = ?`, id).Scan(&c.ID, &c.Name)
	if err != nil {
		return nil, sqlNotFound(err)
	}
	return &c, nil
}

func (db *MySQL) CreateCategory(ctx context.Context, category *model.Category) error {
	_, err := db.DB.ExecContext(ctx, `INSERT INTO categories (id, name) VALUES (?, ?)`, category.ID, category.Name)
	return translate(err)
}

func (db *MySQL) UpdateCategory(ctx context.Context, category *model.Category) error {
	res, err := db.DB.ExecContext(ctx, `UPDATE categories SET name = ? WHERE id = ?`, category.Name, category.ID)
	return affectedOne(res, err)
}

func (db *MySQL) DeleteCategory(ctx context.Context, id string) error {
	res, err := db.DB.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	return affectedOne(res, err)
}
