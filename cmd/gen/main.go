package main

import (
	"bookshelf/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.UserModel{},
		model.BookModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/gormrepo/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
