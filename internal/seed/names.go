package seed

import "github.com/goodnatureofminers/donationledger-backend/internal/model"

var (
	firstNames = []string{
		"Aarav", "Diya", "Ishaan", "Meera", "Kabir", "Ananya", "Rohan", "Saanvi",
		"Vikram", "Priya", "Arjun", "Nisha", "Dev", "Kavya", "Rahul", "Tara",
	}
	lastNames = []string{
		"Sharma", "Iyer", "Patel", "Nair", "Reddy", "Gupta", "Menon", "Khan",
		"Das", "Rao", "Singh", "Joshi",
	}
	clubKinds = []string{
		"Football Club", "Cricket Academy", "Rowing Club", "Chess Circle",
		"Athletics Club", "Hockey Club", "Swimming Club", "Badminton Academy",
	}
	cities = []struct{ city, country string }{
		{"Mumbai", "India"}, {"Bengaluru", "India"}, {"Chennai", "India"},
		{"Kolkata", "India"}, {"Pune", "India"}, {"Kochi", "India"},
	}
	purposes = []string{
		"Equipment", "Travel to tournament", "Coaching fees", "Ground maintenance",
		"Medical kit", "Scholarships", "Uniforms",
	}
	campaignTitles = []string{
		"New training kit", "Floodlights for the ground", "Youth scholarships",
		"Tournament travel fund", "Clubhouse repairs",
	}
	paymentMethods = []string{"UPI", "Card", "Net Banking", "Wallet"}

	categories = model.Categories
)
