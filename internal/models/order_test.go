package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQuotationTransitions(t *testing.T) {
	require.True(t, CanTransition(KindQuotation, StatusPending, StatusBooked))
	require.True(t, CanTransition(KindQuotation, StatusPending, StatusCanceled))

	require.False(t, CanTransition(KindQuotation, StatusBooked, StatusPending))
	require.False(t, CanTransition(KindQuotation, StatusBooked, StatusCanceled))
	require.False(t, CanTransition(KindQuotation, StatusCanceled, StatusPending))
	require.False(t, CanTransition(KindQuotation, StatusPending, StatusPending))
}

func TestBookingTransitionsFollowLifecycle(t *testing.T) {
	chain := []OrderStatus{StatusBooked, StatusPaid, StatusPacked, StatusDispatched, StatusDelivered}
	for i := 0; i < len(chain)-1; i++ {
		require.True(t, CanTransition(KindBooking, chain[i], chain[i+1]),
			"%s -> %s should be legal", chain[i], chain[i+1])
	}

	// No skipping ahead.
	require.False(t, CanTransition(KindBooking, StatusBooked, StatusPacked))
	require.False(t, CanTransition(KindBooking, StatusBooked, StatusDispatched))
	require.False(t, CanTransition(KindBooking, StatusPaid, StatusDispatched))

	// No moving backwards.
	require.False(t, CanTransition(KindBooking, StatusPaid, StatusBooked))
	require.False(t, CanTransition(KindBooking, StatusDelivered, StatusDispatched))
}

func TestBookingCancelOnlyFromBooked(t *testing.T) {
	require.True(t, CanTransition(KindBooking, StatusBooked, StatusCanceled))
	for _, from := range []OrderStatus{StatusPaid, StatusPacked, StatusDispatched, StatusDelivered, StatusCanceled} {
		require.False(t, CanTransition(KindBooking, from, StatusCanceled), "cancel from %s", from)
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, from := range []OrderStatus{StatusDelivered, StatusCanceled} {
		for _, to := range []OrderStatus{StatusBooked, StatusPaid, StatusPacked, StatusDispatched, StatusDelivered, StatusCanceled} {
			require.False(t, CanTransition(KindBooking, from, to), "%s -> %s", from, to)
		}
	}
}

func TestValidStatus(t *testing.T) {
	require.True(t, ValidStatus(KindQuotation, StatusPending))
	require.True(t, ValidStatus(KindQuotation, StatusBooked))
	require.True(t, ValidStatus(KindQuotation, StatusCanceled))
	require.False(t, ValidStatus(KindQuotation, StatusPaid))
	require.False(t, ValidStatus(KindQuotation, OrderStatus("shipped")))

	require.True(t, ValidStatus(KindBooking, StatusDispatched))
	require.False(t, ValidStatus(KindBooking, StatusPending))
	require.False(t, ValidStatus(KindBooking, OrderStatus("")))
}
