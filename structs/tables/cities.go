package tables

import "github.com/uptrace/bun"

type GermanCity struct {
	bun.BaseModel `bun:"table:german_cities,alias:gc"`
	ID            int64  `bun:"id,pk,autoincrement" json:"id"`
	CityName      string `bun:"city_name,notnull" json:"city_name"`
}
