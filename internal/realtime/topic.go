package realtime

import "fmt"

// Topics scope invalidation: one per shop for tenant-wide views, one per
// barber for the day board. Notifications carry no payload; subscribers
// refetch.

func TopicShop(barbershopID uint) string {
	return fmt.Sprintf("agenda:shop:%d", barbershopID)
}

func TopicBarber(barbershopID, barberID uint) string {
	return fmt.Sprintf("agenda:barber:%d:%d", barbershopID, barberID)
}
