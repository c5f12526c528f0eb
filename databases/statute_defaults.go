package databases

import "github.com/linesmerrill/avenue-police-api/models"

// DefaultStatutes returns the penal code the department starts with. Fines are
// in dollars, penalties in months.
func DefaultStatutes() []models.StatuteViolation {
	return []models.StatuteViolation{
		{ID: "art-101", Article: "Art. 101", Description: "Reckless driving", Category: "Traffic", Fine: 1000, Penalty: 0, Bail: 0},
		{ID: "art-102", Article: "Art. 102", Description: "Driving without a license", Category: "Traffic", Fine: 750, Penalty: 0, Bail: 0},
		{ID: "art-103", Article: "Art. 103", Description: "Evading a police officer in a vehicle", Category: "Traffic", Fine: 3000, Penalty: 10, Bail: 5000},
		{ID: "art-104", Article: "Art. 104", Description: "Illegal street racing", Category: "Traffic", Fine: 4000, Penalty: 5, Bail: 4000},
		{ID: "art-105", Article: "Art. 105", Description: "Driving under the influence", Category: "Traffic", Fine: 3000, Penalty: 5, Bail: 3000},
		{ID: "art-201", Article: "Art. 201", Description: "Disorderly conduct", Category: "Public order", Fine: 250, Penalty: 0, Bail: 0},
		{ID: "art-202", Article: "Art. 202", Description: "Disobeying a lawful order", Category: "Public order", Fine: 1000, Penalty: 5, Bail: 1500},
		{ID: "art-203", Article: "Art. 203", Description: "Contempt of authority", Category: "Public order", Fine: 2500, Penalty: 10, Bail: 3000},
		{ID: "art-204", Article: "Art. 204", Description: "Failure to identify to an officer", Category: "Public order", Fine: 1200, Penalty: 5, Bail: 1500},
		{ID: "art-205", Article: "Art. 205", Description: "Obstruction of justice", Category: "Public order", Fine: 1250, Penalty: 15, Bail: 2500},
		{ID: "art-301", Article: "Art. 301", Description: "Assault", Category: "Crimes against persons", Fine: 3500, Penalty: 15, Bail: 5000},
		{ID: "art-302", Article: "Art. 302", Description: "Aggravated assault", Category: "Crimes against persons", Fine: 6000, Penalty: 25, Bail: 10000},
		{ID: "art-303", Article: "Art. 303", Description: "Kidnapping", Category: "Crimes against persons", Fine: 10000, Penalty: 40, Bail: models.BailDenied},
		{ID: "art-304", Article: "Art. 304", Description: "Attempted murder", Category: "Crimes against persons", Fine: 15000, Penalty: 50, Bail: models.BailDenied},
		{ID: "art-305", Article: "Art. 305", Description: "Murder", Category: "Crimes against persons", Fine: 25000, Penalty: 80, Bail: models.BailDenied},
		{ID: "art-401", Article: "Art. 401", Description: "Theft", Category: "Property crimes", Fine: 2000, Penalty: 10, Bail: 2500},
		{ID: "art-402", Article: "Art. 402", Description: "Vehicle theft", Category: "Property crimes", Fine: 4000, Penalty: 15, Bail: 5000},
		{ID: "art-403", Article: "Art. 403", Description: "Armed robbery", Category: "Property crimes", Fine: 8000, Penalty: 30, Bail: models.BailDenied},
		{ID: "art-404", Article: "Art. 404", Description: "Bank robbery", Category: "Property crimes", Fine: 20000, Penalty: 60, Bail: models.BailDenied},
		{ID: "art-405", Article: "Art. 405", Description: "Vandalism", Category: "Property crimes", Fine: 1500, Penalty: 5, Bail: 1500},
		{ID: "art-501", Article: "Art. 501", Description: "Possession of narcotics", Category: "Narcotics and weapons", Fine: 2000, Penalty: 10, Bail: 3000},
		{ID: "art-502", Article: "Art. 502", Description: "Trafficking narcotics", Category: "Narcotics and weapons", Fine: 12000, Penalty: 40, Bail: models.BailDenied},
		{ID: "art-503", Article: "Art. 503", Description: "Illegal possession of a firearm", Category: "Narcotics and weapons", Fine: 5000, Penalty: 20, Bail: 7500},
		{ID: "art-504", Article: "Art. 504", Description: "Brandishing a firearm", Category: "Narcotics and weapons", Fine: 800, Penalty: 5, Bail: 1000},
		{ID: "art-505", Article: "Art. 505", Description: "Weapons trafficking", Category: "Narcotics and weapons", Fine: 15000, Penalty: 50, Bail: models.BailDenied},
	}
}
