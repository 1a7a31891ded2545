package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/cafe-pos/cafe/internal/auth"
	"github.com/cafe-pos/cafe/internal/database"
	"github.com/cafe-pos/cafe/internal/enum"
	"github.com/cafe-pos/cafe/internal/service"
)

// Services bundles everything the console dispatches to.
type Services struct {
	Auth        *service.AuthService
	Catalog     *service.CatalogService
	Orders      *service.OrderService
	Fulfillment *service.FulfillmentService
	Admin       *service.AdminService
	Profile     *service.ProfileService
}

// App is the interactive console. One session at a time; the authenticated
// session is threaded through every operation rather than held globally.
type App struct {
	prompt *Prompter
	out    io.Writer
	svc    Services
}

// NewApp creates the console over the given streams.
func NewApp(in io.Reader, out io.Writer, svc Services) *App {
	return &App{prompt: NewPrompter(in, out), out: out, svc: svc}
}

// Run drives the main menu until the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	for {
		fmt.Fprintln(a.out, "MAIN MENU")
		fmt.Fprintln(a.out, "---------")
		fmt.Fprintln(a.out, "1. Create user")
		fmt.Fprintln(a.out, "2. Log in")
		fmt.Fprintln(a.out, "9. < EXIT")

		choice, err := a.prompt.Choice()
		if err != nil {
			return a.finish(err)
		}

		switch choice {
		case 1:
			err = a.createUser(ctx)
		case 2:
			err = a.login(ctx)
		case 9:
			fmt.Fprintln(a.out, "Bye!")
			return nil
		default:
			fmt.Fprintln(a.out, "Unrecognized choice!")
		}
		if err != nil {
			return a.finish(err)
		}
	}
}

// finish turns end-of-input into a clean exit.
func (a *App) finish(err error) error {
	if errors.Is(err, ErrInputClosed) {
		return nil
	}
	return err
}

// report prints an operation failure and keeps the session going. Sentinel
// errors carry user-facing text; anything else is logged as unexpected.
func (a *App) report(op string, err error) {
	switch {
	case isUserError(err):
		fmt.Fprintln(a.out, err.Error())
	default:
		log.Printf("ERROR: %s: %v", op, err)
	}
}

func isUserError(err error) bool {
	for _, sentinel := range []error{
		service.ErrEmptyLogin, service.ErrEmptyPassword, service.ErrLoginTaken,
		service.ErrInvalidCredentials, service.ErrItemNotFound,
		service.ErrOrderNotFound, service.ErrOrderPaid, service.ErrEmptyDraft,
		service.ErrNegativeQuantity, service.ErrReduceBelowZero,
		service.ErrNotPermitted,
		service.ErrAlreadyPaid, service.ErrItemStatusNotFound,
		service.ErrManagerOnly, service.ErrEmptyItemName,
		service.ErrEmptyItemType, service.ErrInvalidPrice,
		service.ErrUserNotFound, enum.ErrUnknownRole, enum.ErrItemFinished,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func (a *App) createUser(ctx context.Context) error {
	login, err := a.prompt.NonEmpty("\tEnter user login: ", "login cant be empty")
	if err != nil {
		return err
	}
	password, err := a.prompt.NonEmpty("\tEnter user password: ", "password cant be empty")
	if err != nil {
		return err
	}
	phone, err := a.prompt.Line("\tEnter user phone: ")
	if err != nil {
		return err
	}

	if err := a.svc.Auth.CreateAccount(ctx, login, password, phone); err != nil {
		a.report("create user", err)
		return nil
	}
	fmt.Fprintln(a.out, "User successfully created!")
	return nil
}

func (a *App) login(ctx context.Context) error {
	login, err := a.prompt.Line("\tEnter user login: ")
	if err != nil {
		return err
	}
	password, err := a.prompt.Line("\tEnter user password: ")
	if err != nil {
		return err
	}

	sess, err := a.svc.Auth.Login(ctx, login, password)
	if err != nil {
		a.report("log in", err)
		return nil
	}

	log.Printf("session %s opened for %q (%s)", sess.ID, sess.Login, sess.Role)
	err = a.roleMenu(ctx, sess)
	log.Printf("session %s closed", sess.ID)
	return err
}

// roleMenu dispatches to the menu matching the session's role and loops
// until log out.
func (a *App) roleMenu(ctx context.Context, sess auth.Session) error {
	for {
		a.printRoleMenu(sess.Role)

		choice, err := a.prompt.Choice()
		if err != nil {
			return err
		}
		if choice == 9 {
			return nil
		}

		switch {
		case choice >= 1 && choice <= 7:
			err = a.commonChoice(ctx, sess, choice)
		case choice == 8 && sess.Role == enum.RoleManager:
			err = a.updateMenu(ctx, sess)
		default:
			fmt.Fprintln(a.out, "Unrecognized choice!")
		}
		if err != nil {
			return err
		}
	}
}

func (a *App) printRoleMenu(role enum.Role) {
	fmt.Fprintf(a.out, "%s-MAIN MENU\n", role)
	fmt.Fprintln(a.out, "---------")
	fmt.Fprintln(a.out, "1. Browse Menu by ItemName")
	fmt.Fprintln(a.out, "2. Browse Menu by Type")
	fmt.Fprintln(a.out, "3. Add Order")
	fmt.Fprintln(a.out, "4. Update Order")
	if role.IsStaff() {
		fmt.Fprintln(a.out, "5. View Current Orders")
	} else {
		fmt.Fprintln(a.out, "5. View Order History")
	}
	fmt.Fprintln(a.out, "6. View Order Status")
	fmt.Fprintln(a.out, "7. Update User Info")
	if role == enum.RoleManager {
		fmt.Fprintln(a.out, "8. Update Menu")
	}
	fmt.Fprintln(a.out, ".........................")
	fmt.Fprintln(a.out, "9. Log out")
}

func (a *App) commonChoice(ctx context.Context, sess auth.Session, choice int) error {
	switch choice {
	case 1:
		return a.browseByName(ctx)
	case 2:
		return a.browseByType(ctx)
	case 3:
		return a.addOrder(ctx, sess)
	case 4:
		if sess.Role.IsStaff() {
			return a.staffUpdateOrder(ctx, sess)
		}
		return a.updateOrder(ctx, sess)
	case 5:
		if sess.Role.IsStaff() {
			return a.viewCurrentOrders(ctx, sess)
		}
		return a.viewOrderHistory(ctx, sess)
	case 6:
		return a.viewOrderStatus(ctx, sess)
	case 7:
		if sess.Role == enum.RoleManager {
			return a.managerUpdateUserInfo(ctx, sess)
		}
		return a.updateUserInfo(ctx, sess)
	}
	return nil
}

// --- Catalog ---

func (a *App) browseByName(ctx context.Context) error {
	substring, err := a.prompt.Line("\tEnter the item name to search: ")
	if err != nil {
		return err
	}
	items, err := a.svc.Catalog.SearchByName(ctx, substring)
	if err != nil {
		a.report("browse menu by name", err)
		return nil
	}
	renderMenuItems(a.out, items)
	return nil
}

func (a *App) browseByType(ctx context.Context) error {
	substring, err := a.prompt.Line("\tEnter the item type to search: ")
	if err != nil {
		return err
	}
	items, err := a.svc.Catalog.SearchByType(ctx, substring)
	if err != nil {
		a.report("browse menu by type", err)
		return nil
	}
	renderMenuItems(a.out, items)
	return nil
}

// --- Orders ---

// enterDraft runs the interactive item-entry loop: item name (re-prompt until
// it matches the catalog), amount, per-item comment, then a strict yes/no
// continue prompt.
func (a *App) enterDraft(ctx context.Context, mode service.DraftMode) (*service.Draft, error) {
	draft := service.NewDraft(mode)
	for {
		item, err := a.promptMenuItem(ctx)
		if err != nil {
			return nil, err
		}

		amount, err := a.promptAmount(mode)
		if err != nil {
			return nil, err
		}
		if amount == 0 {
			fmt.Fprintln(a.out, "Order Cancelled")
		} else {
			comment, err := a.prompt.Line("\tHave any comment on this item?(type 'null' if you have no comment): ")
			if err != nil {
				return nil, err
			}
			if comment == "null" {
				comment = ""
			}
			if err := draft.Add(item, amount, comment); err != nil {
				return nil, err
			}
		}

		more, err := a.prompt.YesNo("\tDo you want anything else?(yes/no): ")
		if err != nil {
			return nil, err
		}
		if !more {
			return draft, nil
		}
	}
}

// promptMenuItem re-prompts until the entered name matches a catalog row.
func (a *App) promptMenuItem(ctx context.Context) (database.MenuItem, error) {
	for {
		name, err := a.prompt.Line("\tEnter the name of the item: ")
		if err != nil {
			return database.MenuItem{}, err
		}
		item, err := a.svc.Catalog.GetItem(ctx, name)
		if err == nil {
			return item, nil
		}
		if errors.Is(err, service.ErrItemNotFound) {
			fmt.Fprintln(a.out, "\tSorry, we can't match the name of the item that you want to buy")
			continue
		}
		return database.MenuItem{}, err
	}
}

// promptAmount reads a quantity. Creation rejects negatives with a re-prompt;
// amendment accepts them as reductions.
func (a *App) promptAmount(mode service.DraftMode) (int32, error) {
	for {
		label := "\tEnter the amount of order (cannont be negative): "
		if mode == service.DraftAmend {
			label = "\tEnter the amount to change (negative lowers the order): "
		}
		amount, err := a.prompt.Int32(label)
		if err != nil {
			return 0, err
		}
		if amount < 0 && mode == service.DraftCreate {
			fmt.Fprintln(a.out, "\tSorry, we do not accept negative number here, please re-enter a 0 or positive number")
			continue
		}
		return amount, nil
	}
}

func (a *App) addOrder(ctx context.Context, sess auth.Session) error {
	draft, err := a.enterDraft(ctx, service.DraftCreate)
	if err != nil {
		return err
	}
	if draft.Empty() {
		return nil
	}

	order, err := a.svc.Orders.Create(ctx, sess.Login, draft)
	if err != nil {
		a.report("add order", err)
		return nil
	}
	fmt.Fprintln(a.out, "Order has been successfully created.")
	fmt.Fprintf(a.out, "Orderid is %d\n", order.OrderID)
	return nil
}

func (a *App) updateOrder(ctx context.Context, sess auth.Session) error {
	orderID, err := a.prompt.Int("\tEnter in the order ID: ")
	if err != nil {
		return err
	}

	draft, err := a.enterDraft(ctx, service.DraftAmend)
	if err != nil {
		return err
	}
	if draft.Empty() {
		return nil
	}

	order, err := a.svc.Orders.Amend(ctx, sess, int64(orderID), draft)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			fmt.Fprintln(a.out, "Sorry, we cannot find your order, please re-enter the orderid.")
		case errors.Is(err, service.ErrOrderPaid):
			fmt.Fprintln(a.out, "Sorry, this order can't be change because it has been paid.")
		default:
			a.report("update order", err)
		}
		return nil
	}
	fmt.Fprintln(a.out, "Order has been successfully updated.")
	fmt.Fprintf(a.out, "New total is %s\n", database.NumericToDecimal(order.Total).StringFixed(2))
	return nil
}

// staffUpdateOrder lets staff either amend their own order or work another
// customer's: settle payment and advance item preparation.
func (a *App) staffUpdateOrder(ctx context.Context, sess auth.Session) error {
	choice, err := a.prompt.Int("\tDo you want to update your own order or someone else's (1=yourself,2=others)?  ")
	if err != nil {
		return err
	}
	switch choice {
	case 1:
		return a.updateOrder(ctx, sess)
	case 2:
		return a.fulfillOrder(ctx, sess)
	default:
		fmt.Fprintln(a.out, "Unrecognized choice!")
	}
	return nil
}

func (a *App) fulfillOrder(ctx context.Context, sess auth.Session) error {
	orderID, err := a.prompt.Int("\tEnter in the order ID: ")
	if err != nil {
		return err
	}

	statuses, err := a.svc.Fulfillment.ItemStatuses(ctx, sess, int64(orderID))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			fmt.Fprintln(a.out, "Sorry, we cannot find your order, please re-enter the orderid.")
			return nil
		}
		a.report("view order", err)
		return nil
	}

	pay, err := a.prompt.YesNo("\tWould you want to mark this order as paid?(yes/no) ")
	if err != nil {
		return err
	}
	if pay {
		if err := a.svc.Fulfillment.MarkPaid(ctx, sess, int64(orderID)); err != nil {
			a.report("mark order paid", err)
		}
	}

	renderItemStatuses(a.out, statuses)

	itemName, err := a.prompt.Line("\tWhich item do you want to update? ")
	if err != nil {
		return err
	}
	next, err := a.svc.Fulfillment.AdvanceItem(ctx, sess, int64(orderID), itemName)
	if err != nil {
		if errors.Is(err, enum.ErrItemFinished) {
			fmt.Fprintln(a.out, "This order has been finished, you cannot change it anymore")
			return nil
		}
		a.report("advance item status", err)
		return nil
	}
	fmt.Fprintf(a.out, "Item status is now %s\n", next)
	return nil
}

func (a *App) viewCurrentOrders(ctx context.Context, sess auth.Session) error {
	orders, err := a.svc.Fulfillment.CurrentOrders(ctx, sess)
	if err != nil {
		a.report("view current orders", err)
		return nil
	}
	renderOrders(a.out, orders)
	return nil
}

func (a *App) viewOrderHistory(ctx context.Context, sess auth.Session) error {
	orders, err := a.svc.Fulfillment.History(ctx, sess)
	if err != nil {
		a.report("view order history", err)
		return nil
	}
	renderOrders(a.out, orders)
	return nil
}

func (a *App) viewOrderStatus(ctx context.Context, sess auth.Session) error {
	orderID, err := a.prompt.Int("\tEnter in the order ID: ")
	if err != nil {
		return err
	}
	statuses, err := a.svc.Fulfillment.ItemStatuses(ctx, sess, int64(orderID))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			fmt.Fprintln(a.out, "Sorry, we cannot find your order, please re-enter the orderid.")
			return nil
		}
		a.report("view order status", err)
		return nil
	}
	renderItemStatuses(a.out, statuses)
	return nil
}

// --- Profile ---

func (a *App) updateUserInfo(ctx context.Context, sess auth.Session) error {
	fmt.Fprintln(a.out, "\tWhat do you want to update?")
	fmt.Fprintln(a.out, "\t1.password")
	fmt.Fprintln(a.out, "\t2.phone number")
	fmt.Fprintln(a.out, "\t3.favorite item")

	choice, err := a.prompt.Choice()
	if err != nil {
		return err
	}

	switch choice {
	case 1:
		password, err := a.prompt.NonEmpty("\tEnter the new password: ", "new password cannot be empty")
		if err != nil {
			return err
		}
		if err := a.svc.Profile.UpdatePassword(ctx, sess, password); err != nil {
			a.report("update password", err)
			return nil
		}
	case 2:
		phone, err := a.prompt.Line("\tEnter the new phone number: ")
		if err != nil {
			return err
		}
		if err := a.svc.Profile.UpdatePhone(ctx, sess, phone); err != nil {
			a.report("update phone", err)
			return nil
		}
	case 3:
		item, err := a.prompt.Line("\tEnter your favorite item: ")
		if err != nil {
			return err
		}
		if err := a.svc.Profile.AddFavoriteItem(ctx, sess, item); err != nil {
			a.report("add favorite item", err)
			return nil
		}
	default:
		fmt.Fprintln(a.out, "Unrecognized choice!")
		return nil
	}
	fmt.Fprintln(a.out, "Update Successfully")
	return nil
}

func (a *App) managerUpdateUserInfo(ctx context.Context, sess auth.Session) error {
	fmt.Fprintln(a.out, "\tDo you want to update your own info or other users' type?")
	fmt.Fprintln(a.out, "\t1. Own info")
	fmt.Fprintln(a.out, "\t2. Other's type")

	choice, err := a.prompt.Choice()
	if err != nil {
		return err
	}
	switch choice {
	case 1:
		return a.updateUserInfo(ctx, sess)
	case 2:
		login, err := a.prompt.Line("\tEnter the login name that you want to update: ")
		if err != nil {
			return err
		}
		role, err := a.prompt.Line("\tWhat do you want to update that user's type to? ")
		if err != nil {
			return err
		}
		if err := a.svc.Admin.ChangeUserRole(ctx, sess, login, role); err != nil {
			if errors.Is(err, enum.ErrUnknownRole) {
				fmt.Fprintln(a.out, "Unrecognized type!")
				return nil
			}
			a.report("change user role", err)
			return nil
		}
		fmt.Fprintln(a.out, "Update Successfully")
	default:
		fmt.Fprintln(a.out, "Unrecognized choice!")
	}
	return nil
}

// --- Menu maintenance ---

func (a *App) updateMenu(ctx context.Context, sess auth.Session) error {
	fmt.Fprintln(a.out, "\tWhat action do you want to take?:")
	fmt.Fprintln(a.out, "\t1.add")
	fmt.Fprintln(a.out, "\t2.update")
	fmt.Fprintln(a.out, "\t3.delete")

	choice, err := a.prompt.Choice()
	if err != nil {
		return err
	}
	switch choice {
	case 1:
		return a.addMenuItem(ctx, sess)
	case 2:
		return a.updateMenuItem(ctx, sess)
	case 3:
		return a.deleteMenuItem(ctx, sess)
	default:
		fmt.Fprintln(a.out, "Unrecognized choice!")
	}
	return nil
}

func (a *App) addMenuItem(ctx context.Context, sess auth.Session) error {
	name, err := a.prompt.NonEmpty("\tEnter the itemName: ", "itemName cant be empty")
	if err != nil {
		return err
	}
	itemType, err := a.prompt.NonEmpty("\tEnter the type for this item: ", "type cant be empty")
	if err != nil {
		return err
	}
	price, err := a.promptPrice()
	if err != nil {
		return err
	}
	description, err := a.prompt.Line("\tEnter the description for this item: ")
	if err != nil {
		return err
	}
	imageURL, err := a.prompt.Line("\tEnter the imageURL for this item: ")
	if err != nil {
		return err
	}

	err = a.svc.Admin.AddItem(ctx, sess, service.AddMenuItemParams{
		ItemName:    name,
		Type:        itemType,
		Price:       price,
		Description: description,
		ImageURL:    imageURL,
	})
	if err != nil {
		a.report("add menu item", err)
		return nil
	}
	fmt.Fprintln(a.out, "Item successfully added!")
	return nil
}

// promptPrice re-prompts until the answer is a positive decimal.
func (a *App) promptPrice() (string, error) {
	for {
		s, err := a.prompt.Line("\tEnter the price for this item: ")
		if err != nil {
			return "", err
		}
		if _, err := service.ParsePrice(s); err != nil {
			fmt.Fprintln(a.out, "price must be a positive number")
			continue
		}
		return s, nil
	}
}

func (a *App) updateMenuItem(ctx context.Context, sess auth.Session) error {
	name, err := a.prompt.Line("\tEnter the itemName of the item to update: ")
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "\tWhich field do you want to update?")
	fmt.Fprintln(a.out, "\t1.itemName")
	fmt.Fprintln(a.out, "\t2.type")
	fmt.Fprintln(a.out, "\t3.price")
	fmt.Fprintln(a.out, "\t4.description")
	fmt.Fprintln(a.out, "\t5.imageURL")

	choice, err := a.prompt.Choice()
	if err != nil {
		return err
	}

	var opErr error
	switch choice {
	case 1:
		newName, err := a.prompt.NonEmpty("\tEnter the new itemName: ", "itemName cant be empty")
		if err != nil {
			return err
		}
		opErr = a.svc.Admin.Rename(ctx, sess, name, newName)
	case 2:
		newType, err := a.prompt.NonEmpty("\tEnter the new type: ", "type cant be empty")
		if err != nil {
			return err
		}
		opErr = a.svc.Admin.Retype(ctx, sess, name, newType)
	case 3:
		price, err := a.promptPrice()
		if err != nil {
			return err
		}
		opErr = a.svc.Admin.Reprice(ctx, sess, name, price)
	case 4:
		description, err := a.prompt.Line("\tEnter the new description: ")
		if err != nil {
			return err
		}
		opErr = a.svc.Admin.Redescribe(ctx, sess, name, description)
	case 5:
		imageURL, err := a.prompt.Line("\tEnter the new imageURL: ")
		if err != nil {
			return err
		}
		opErr = a.svc.Admin.Reimage(ctx, sess, name, imageURL)
	default:
		fmt.Fprintln(a.out, "Unrecognized choice!")
		return nil
	}

	if opErr != nil {
		a.report("update menu item", opErr)
		return nil
	}
	fmt.Fprintln(a.out, "Update Successfully")
	return nil
}

func (a *App) deleteMenuItem(ctx context.Context, sess auth.Session) error {
	name, err := a.prompt.Line("\tEnter the itemName of the item to delete: ")
	if err != nil {
		return err
	}
	if err := a.svc.Admin.DeleteItem(ctx, sess, name); err != nil {
		a.report("delete menu item", err)
		return nil
	}
	fmt.Fprintln(a.out, "Item successfully deleted!")
	return nil
}
