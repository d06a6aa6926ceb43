package database

// Order queries
const (
	InsertOrderSQL = `
		INSERT INTO orders (order_id, customer_name, customer_phone, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	InsertOrderItemSQL = `
		INSERT INTO order_items (order_id, vendor, item, quantity, price, total)
		VALUES ($1, $2, $3, $4, $5, $6)`

	ListOrdersSQL = `
		SELECT id, order_id, customer_name, customer_phone, created_at
		FROM orders
		ORDER BY created_at DESC, id DESC`

	ListOrderItemsSQL = `
		SELECT o.order_id, i.vendor, i.item, i.quantity, i.price, i.total
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		ORDER BY o.created_at DESC, o.id DESC, i.id ASC`
)

// Vendor summary queries
const (
	MergeVendorSummarySQL = `
		INSERT INTO vendor_summary (vendor, item, total_quantity, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (vendor, item) DO UPDATE SET
			total_quantity = vendor_summary.total_quantity + EXCLUDED.total_quantity,
			updated_at = NOW()`

	ListVendorSummarySQL = `
		SELECT vendor, item, total_quantity
		FROM vendor_summary
		ORDER BY vendor ASC, item ASC`
)
