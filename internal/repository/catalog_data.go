package repository

import "github.com/iliyamo/delivery-price-compare/internal/model"

// referenceRestaurants is the built-in catalog served when no external
// catalog is configured.
func referenceRestaurants() []model.Restaurant {
	return []model.Restaurant{
		{
			ID:                    "1",
			Name:                  "McDonald's",
			CuisineType:           "Fast Food",
			ImageURL:              "https://images.unsplash.com/photo-1555992336-03a23c73e0c6?w=400&h=300&fit=crop",
			AverageRating:         4.2,
			EstimatedDeliveryTime: "25-35 min",
			Location:              "Downtown",
		},
		{
			ID:                    "2",
			Name:                  "Pizza Hut",
			CuisineType:           "Pizza",
			ImageURL:              "https://images.unsplash.com/photo-1513104890138-7c749659a591?w=400&h=300&fit=crop",
			AverageRating:         4.1,
			EstimatedDeliveryTime: "30-40 min",
			Location:              "Midtown",
		},
		{
			ID:                    "3",
			Name:                  "Burger King",
			CuisineType:           "Fast Food",
			ImageURL:              "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?w=400&h=300&fit=crop",
			AverageRating:         4.0,
			EstimatedDeliveryTime: "20-30 min",
			Location:              "Downtown",
		},
		{
			ID:                    "4",
			Name:                  "Subway",
			CuisineType:           "Sandwiches",
			ImageURL:              "https://images.unsplash.com/photo-1539252554453-80ab65ce3586?w=400&h=300&fit=crop",
			AverageRating:         4.3,
			EstimatedDeliveryTime: "15-25 min",
			Location:              "Uptown",
		},
		{
			ID:                    "5",
			Name:                  "Domino's Pizza",
			CuisineType:           "Pizza",
			ImageURL:              "https://images.unsplash.com/photo-1506354666786-959d6d497f1a?w=400&h=300&fit=crop",
			AverageRating:         4.2,
			EstimatedDeliveryTime: "20-30 min",
			Location:              "Midtown",
		},
		{
			ID:                    "6",
			Name:                  "KFC",
			CuisineType:           "Fast Food",
			ImageURL:              "https://images.unsplash.com/photo-1626645738196-c2a7c87a8f58?w=400&h=300&fit=crop",
			AverageRating:         4.1,
			EstimatedDeliveryTime: "25-35 min",
			Location:              "Downtown",
		},
		{
			ID:                    "7",
			Name:                  "Taco Bell",
			CuisineType:           "Mexican",
			ImageURL:              "https://images.unsplash.com/photo-1565299624946-b28f40a0ca4b?w=400&h=300&fit=crop",
			AverageRating:         4.0,
			EstimatedDeliveryTime: "20-30 min",
			Location:              "Uptown",
		},
		{
			ID:                    "8",
			Name:                  "Panda Express",
			CuisineType:           "Asian",
			ImageURL:              "https://images.unsplash.com/photo-1617093727343-374698b1b08d?w=400&h=300&fit=crop",
			AverageRating:         4.3,
			EstimatedDeliveryTime: "25-35 min",
			Location:              "Midtown",
		},
	}
}

// referencePrices holds three platform offers per reference restaurant.
func referencePrices() map[string][]model.PlatformPrice {
	return map[string][]model.PlatformPrice{
		"1": { // McDonald's
			{Platform: "DoorDash", BasePrice: 12.99, DeliveryFee: 2.99, ServiceFee: 1.50, Tax: 1.52, Total: 19.00},
			{Platform: "Uber Eats", BasePrice: 12.99, DeliveryFee: 0.99, ServiceFee: 2.00, Tax: 1.52, Total: 17.50},
			{Platform: "Grubhub", BasePrice: 13.49, DeliveryFee: 3.49, ServiceFee: 1.25, Tax: 1.62, Total: 19.85},
		},
		"2": { // Pizza Hut
			{Platform: "DoorDash", BasePrice: 18.99, DeliveryFee: 3.99, ServiceFee: 2.50, Tax: 2.30, Total: 27.78},
			{Platform: "Uber Eats", BasePrice: 17.99, DeliveryFee: 1.99, ServiceFee: 2.75, Tax: 2.18, Total: 24.91},
			{Platform: "Grubhub", BasePrice: 19.49, DeliveryFee: 4.49, ServiceFee: 2.25, Tax: 2.37, Total: 28.60},
		},
		"3": { // Burger King
			{Platform: "DoorDash", BasePrice: 11.49, DeliveryFee: 2.49, ServiceFee: 1.75, Tax: 1.39, Total: 17.12},
			{Platform: "Uber Eats", BasePrice: 10.99, DeliveryFee: 0.49, ServiceFee: 1.50, Tax: 1.33, Total: 14.31},
			{Platform: "Grubhub", BasePrice: 12.49, DeliveryFee: 3.99, ServiceFee: 1.50, Tax: 1.51, Total: 19.49},
		},
		"4": { // Subway
			{Platform: "DoorDash", BasePrice: 9.99, DeliveryFee: 1.99, ServiceFee: 1.25, Tax: 1.21, Total: 14.44},
			{Platform: "Uber Eats", BasePrice: 9.49, DeliveryFee: 0.99, ServiceFee: 1.50, Tax: 1.15, Total: 13.13},
			{Platform: "Grubhub", BasePrice: 10.49, DeliveryFee: 2.99, ServiceFee: 1.00, Tax: 1.27, Total: 15.75},
		},
		"5": { // Domino's Pizza
			{Platform: "DoorDash", BasePrice: 16.99, DeliveryFee: 3.49, ServiceFee: 2.25, Tax: 2.06, Total: 24.79},
			{Platform: "Uber Eats", BasePrice: 15.99, DeliveryFee: 1.49, ServiceFee: 2.50, Tax: 1.94, Total: 21.92},
			{Platform: "Grubhub", BasePrice: 17.49, DeliveryFee: 4.99, ServiceFee: 2.00, Tax: 2.12, Total: 26.60},
		},
		"6": { // KFC
			{Platform: "DoorDash", BasePrice: 14.99, DeliveryFee: 2.99, ServiceFee: 1.75, Tax: 1.82, Total: 21.55},
			{Platform: "Uber Eats", BasePrice: 13.99, DeliveryFee: 0.99, ServiceFee: 2.25, Tax: 1.70, Total: 18.93},
			{Platform: "Grubhub", BasePrice: 15.49, DeliveryFee: 3.99, ServiceFee: 1.50, Tax: 1.88, Total: 22.86},
		},
		"7": { // Taco Bell
			{Platform: "DoorDash", BasePrice: 8.99, DeliveryFee: 1.99, ServiceFee: 1.25, Tax: 1.09, Total: 13.32},
			{Platform: "Uber Eats", BasePrice: 8.49, DeliveryFee: 0.49, ServiceFee: 1.50, Tax: 1.03, Total: 11.51},
			{Platform: "Grubhub", BasePrice: 9.49, DeliveryFee: 2.99, ServiceFee: 1.00, Tax: 1.15, Total: 14.63},
		},
		"8": { // Panda Express
			{Platform: "DoorDash", BasePrice: 13.99, DeliveryFee: 2.49, ServiceFee: 1.75, Tax: 1.70, Total: 19.93},
			{Platform: "Uber Eats", BasePrice: 12.99, DeliveryFee: 0.99, ServiceFee: 2.00, Tax: 1.58, Total: 17.56},
			{Platform: "Grubhub", BasePrice: 14.49, DeliveryFee: 3.49, ServiceFee: 1.50, Tax: 1.76, Total: 21.24},
		},
	}
}
