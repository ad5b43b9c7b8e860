// internal/domain/catalog/seed.go
package catalog

import "github.com/shopspring/decimal"

// seedBooks is the built-in catalog used when the backend is
// unreachable, so browsing keeps working in demos and local dev.
var seedBooks = []Book{
	{
		ID:          "1",
		Title:       "It Ends With Us",
		Author:      "Colleen Hoover",
		Price:       decimal.NewFromInt(399),
		Description: "A novel about love, choices, and strength.",
		Category:    "Romance",
		Stock:       10,
		Image:       "/assets/images/books/Book101.jpg",
	},
	{
		ID:          "2",
		Title:       "It Starts With Us",
		Author:      "Colleen Hoover",
		Price:       decimal.NewFromInt(449),
		Description: "The sequel to 'It Ends With Us'.",
		Category:    "Romance",
		Stock:       8,
		Image:       "/assets/images/books/Book102.jpg",
	},
	{
		ID:          "3",
		Title:       "Atomic Habits",
		Author:      "James Clear",
		Price:       decimal.NewFromInt(349),
		Description: "Guide to building better habits.",
		Category:    "Self-Help",
		Stock:       12,
		Image:       "/assets/images/books/Book103.jpg",
	},
	{
		ID:          "4",
		Title:       "Kafka on the Shore",
		Author:      "Haruki Murakami",
		Price:       decimal.NewFromInt(399),
		Description: "A surreal journey of love, fate, and destiny.",
		Category:    "Fiction",
		Stock:       7,
		Image:       "/assets/images/books/Book104.jpg",
	},
	{
		ID:          "5",
		Title:       "Harry Potter and the Sorcerer's Stone",
		Author:      "J.K. Rowling",
		Price:       decimal.NewFromInt(499),
		Description: "The first book of the Harry Potter series.",
		Category:    "Fantasy",
		Stock:       20,
		Image:       "/assets/images/books/Book105.jpg",
	},
	{
		ID:          "101",
		Title:       "The Psychology of Money",
		Author:      "Morgan Housel",
		Price:       decimal.NewFromInt(299),
		Description: "A timeless guide on how our emotions and perceptions influence financial decisions.",
		Category:    "Psychology",
		Stock:       15,
		Image:       "/assets/images/books/Book1.jpg",
	},
	{
		ID:          "104",
		Title:       "Deep Work",
		Author:      "Cal Newport",
		Price:       decimal.NewFromInt(299),
		Description: "A guide to mastering focus in a distracted world, improving productivity and creativity.",
		Category:    "Science",
		Stock:       9,
		Image:       "/assets/images/books/Book4.jpg",
	},
}
