// controller/controllers.go
package controller

// Controllers bundles the route handlers for router setup.
type Controllers struct {
	Policy       *PolicyController
	Access       *AccessController
	Payment      *PaymentController
	Registration *RegistrationController
	Notification *NotificationController
}
