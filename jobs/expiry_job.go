package jobs

import (
	"log"
	"time"

	"github.com/tembea/local_guide/database"
	"github.com/tembea/local_guide/models"
	"github.com/tembea/local_guide/services"
)

// ExpireStalePendingBookings cancels pending bookings whose window has
// already started without the guide ever confirming. This is a system write,
// not an actor transition, so it bypasses the ledger's authorization check.
func ExpireStalePendingBookings() {
	log.Println("Running job: ExpireStalePendingBookings...")

	now := time.Now().UTC()
	today := services.DateOnly(now)
	nowMinute := now.Hour()*60 + now.Minute()

	var staleBookings []models.Booking
	err := database.DB.
		Where("status = ?", models.BookingStatusPending).
		Where("date < ? OR (date = ? AND start_minute <= ?)", today, today, nowMinute).
		Find(&staleBookings).Error
	if err != nil {
		log.Printf("Error checking for stale pending bookings: %v", err)
		return
	}

	if len(staleBookings) == 0 {
		log.Println("No stale pending bookings found.")
		return
	}

	for _, booking := range staleBookings {
		booking.Status = models.BookingStatusCancelled
		database.DB.Save(&booking)
	}

	log.Printf("Cancelled %d stale pending booking(s).", len(staleBookings))
}
